package request

import "io"

// File is one uploaded multipart part, handed to services as a stream
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}
