package wire

import (
	"fleet-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVehicle(r chi.Router, vehicleHandler *adaptor.VehicleHandler) {
	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", vehicleHandler.ListVehicles)
		r.Post("/", vehicleHandler.CreateVehicle)
		r.Post("/alerts/scan", vehicleHandler.ScanAlerts)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", vehicleHandler.GetVehicle)
			r.Put("/", vehicleHandler.UpdateVehicle)
			r.Delete("/", vehicleHandler.DeleteVehicle)
			r.Put("/driver", vehicleHandler.AssignDriver)

			r.Get("/documents", vehicleHandler.ListDocuments)
			r.Post("/documents", vehicleHandler.AddDocument)
			r.Put("/documents/{docID}/verify", vehicleHandler.VerifyDocument)
			r.Delete("/documents/{docID}", vehicleHandler.DeleteDocument)

			r.Get("/maintenance", vehicleHandler.ListMaintenance)
			r.Post("/maintenance", vehicleHandler.AddMaintenance)
			r.Delete("/maintenance/{logID}", vehicleHandler.DeleteMaintenance)

			r.Get("/performance", vehicleHandler.Performance)
			r.Post("/performance", vehicleHandler.AddPerformance)

			r.Get("/alerts", vehicleHandler.ListAlerts)
			r.Post("/alerts", vehicleHandler.CreateAlert)
			r.Put("/alerts/{alertID}/resolve", vehicleHandler.ResolveAlert)
		})
	})
}
