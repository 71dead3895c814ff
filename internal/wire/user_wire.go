package wire

import (
	"fleet-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)               // GET /api/admin/users?role=&blocked=&search=
		r.Put("/{id}/block", userHandler.BlockUser)     // PUT /api/admin/users/{id}/block
		r.Put("/{id}/unblock", userHandler.UnblockUser) // PUT /api/admin/users/{id}/unblock
		r.Put("/{id}/role", userHandler.ChangeRole)     // PUT /api/admin/users/{id}/role
		r.Delete("/{id}", userHandler.DeleteUser)       // DELETE /api/admin/users/{id}
	})
}
