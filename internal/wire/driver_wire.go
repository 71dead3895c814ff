package wire

import (
	"fleet-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireDriver registers driver onboarding, profile and KYC review routes
func wireDriver(r chi.Router, driverHandler *adaptor.DriverHandler) {
	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", driverHandler.ListDrivers)
		r.Post("/", driverHandler.CreateDriver) // multipart
		r.Post("/otp", driverHandler.SendOTP)
		r.Get("/{id}", driverHandler.GetDriver)
		r.Put("/{id}", driverHandler.UpdateDriver)
		r.Delete("/{id}", driverHandler.DeleteDriver)
		r.Get("/{id}/performance", driverHandler.Performance)
		r.Put("/{id}/location", driverHandler.UpdateLocation)
	})

	// {id} is the driver id; a driver carries exactly one KYC record
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", driverHandler.ListDocuments)
		r.Get("/{id}", driverHandler.GetDocuments)
		r.Post("/{id}", driverHandler.UploadDocument)
		r.Put("/{id}/approve", driverHandler.ApproveKYC)
		r.Put("/{id}/reject", driverHandler.RejectKYC)
		r.Put("/{id}/resubmit", driverHandler.RequestResubmission)
	})
}
