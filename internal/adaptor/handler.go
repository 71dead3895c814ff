package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"
	"fleet-admin/pkg/websocket"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Booking   *BookingHandler
	Driver    *DriverHandler
	Vehicle   *VehicleHandler
	Pricing   *PricingHandler
	Analytics *AnalyticsHandler
	Tracking  *TrackingHandler
}

func NewHandler(service *usecase.Service, hub *websocket.Hub, config *utils.Config, log *zap.Logger) *Handler {
	maxUpload := config.Storage.MaxUploadMB << 20
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Driver:    NewDriverHandler(service.Driver, maxUpload, log),
		Vehicle:   NewVehicleHandler(service.Vehicle, maxUpload, log),
		Pricing:   NewPricingHandler(service.Pricing, log),
		Analytics: NewAnalyticsHandler(service.Analytics, log),
		Tracking:  NewTrackingHandler(service.Tracking, hub, log),
	}
}

// handleServiceError maps service sentinels onto HTTP statuses. Unknown
// errors are logged in full and hidden from the client.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidState):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeJSON writes the 400 itself and reports whether the handler should
// continue
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func pageFromQuery(r *http.Request) request.PaginatedRequest {
	q := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(q.Get("page"), 1),
		PerPage: utils.ParseInt(q.Get("per_page"), 10),
	}
}

// formFiles collects multipart parts and closes them once the service is
// done reading
type formFiles struct {
	closers []io.Closer
}

// file returns nil when the part is absent
func (f *formFiles) file(r *http.Request, field string) (*request.File, error) {
	part, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	f.closers = append(f.closers, part)

	return &request.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     part,
	}, nil
}

// files picks up every field in names that carries a part
func (f *formFiles) files(r *http.Request, names ...string) (map[string]*request.File, error) {
	out := make(map[string]*request.File)
	for _, name := range names {
		file, err := f.file(r, name)
		if err != nil {
			return nil, err
		}
		if file != nil {
			out[name] = file
		}
	}
	return out, nil
}

func (f *formFiles) Close() {
	for _, c := range f.closers {
		_ = c.Close()
	}
}

func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) bool {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseBadRequest(w, "Upload too large", map[string]string{"file": fmt.Sprintf("must be at most %d MB", maxBytes>>20)})
			return false
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return false
	}
	return true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func formPtr(r *http.Request, key string) *string {
	if _, ok := r.MultipartForm.Value[key]; !ok {
		return nil
	}
	v := r.FormValue(key)
	return &v
}
