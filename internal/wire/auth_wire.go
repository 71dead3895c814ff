package wire

import (
	"fleet-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth registers the only public admin route
func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Post("/login", authHandler.Login)
}
