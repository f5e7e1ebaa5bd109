// Package handler implements the HTTP handlers for the transit API.
// All handlers are methods on Server. Methods are split into resource
// files (trip.go, vehicle.go, etc.) but all share the same Server struct
// so they can access its dependencies. Each resource file declares the
// service interface it depends on, following the Go convention of defining
// interfaces in the consumer package so handler tests can inject mocks
// without touching the database or service layer.
package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/rbe-dev-920/tce-serv/internal/middleware"
)

// Deps collects everything the Server needs. Grouping them in a struct
// keeps NewServer readable as the resource count grows.
type Deps struct {
	Trips       TripServicer
	Vehicles    VehicleServicer
	Conductors  ConductorServicer
	Lines       LineServicer
	Directions  DirectionServicer
	CheckIns    CheckInServicer
	Devices     DeviceServicer
	Stops       StopServicer
	Itineraries ItineraryServicer

	Gate *middleware.ReadinessGate
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips       TripServicer
	vehicles    VehicleServicer
	conductors  ConductorServicer
	lines       LineServicer
	directions  DirectionServicer
	checkIns    CheckInServicer
	devices     DeviceServicer
	stops       StopServicer
	itineraries ItineraryServicer
	gate        *middleware.ReadinessGate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		trips:       d.Trips,
		vehicles:    d.Vehicles,
		conductors:  d.Conductors,
		lines:       d.Lines,
		directions:  d.Directions,
		checkIns:    d.CheckIns,
		devices:     d.Devices,
		stops:       d.Stops,
		itineraries: d.Itineraries,
		gate:        d.Gate,
	}
}

// Routes returns the /api/v1 resource router. The readiness gate is applied
// here; health and metrics endpoints are mounted outside it in main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	if s.gate != nil {
		r.Use(s.gate.Handler)
	}

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.ListVehicles)
		r.Post("/", s.CreateVehicle)
		r.Get("/{id}", s.GetVehicle)
		r.Put("/{id}", s.UpdateVehicle)
		r.Delete("/{id}", s.DeleteVehicle)
	})

	r.Route("/conductors", func(r chi.Router) {
		r.Get("/", s.ListConductors)
		r.Post("/", s.CreateConductor)
		r.Get("/{id}", s.GetConductor)
		r.Put("/{id}", s.UpdateConductor)
		r.Delete("/{id}", s.DeleteConductor)
	})

	r.Route("/lines", func(r chi.Router) {
		r.Get("/", s.ListLines)
		r.Post("/", s.CreateLine)
		r.Get("/{id}", s.GetLine)
		r.Get("/{id}/directions", s.ListLineDirections)
		r.Put("/{id}", s.UpdateLine)
		r.Delete("/{id}", s.DeleteLine)
	})

	r.Route("/directions", func(r chi.Router) {
		r.Get("/", s.ListDirections)
		r.Post("/", s.CreateDirection)
		r.Get("/{id}", s.GetDirection)
		r.Put("/{id}", s.UpdateDirection)
		r.Delete("/{id}", s.DeleteDirection)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Get("/{id}", s.GetTrip)
		r.Patch("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
	})

	r.Route("/checkins", func(r chi.Router) {
		r.Get("/", s.ListCheckIns)
		r.Post("/", s.CreateCheckIn)
		r.Get("/{id}", s.GetCheckIn)
		r.Put("/{id}", s.UpdateCheckIn)
		r.Delete("/{id}", s.DeleteCheckIn)
	})

	r.Get("/stats/checkins", s.CheckInStats)

	r.Route("/devices", func(r chi.Router) {
		r.Get("/", s.ListDevices)
		r.Post("/", s.CreateDevice)
		r.Get("/{id}", s.GetDevice)
		r.Put("/{id}", s.UpdateDevice)
		r.Delete("/{id}", s.DeleteDevice)
	})

	r.Route("/stops", func(r chi.Router) {
		r.Get("/", s.ListStops)
		r.Post("/", s.CreateStop)
		r.Get("/{id}", s.GetStop)
		r.Put("/{id}", s.UpdateStop)
		r.Delete("/{id}", s.DeleteStop)
	})

	r.Route("/itineraries", func(r chi.Router) {
		r.Get("/", s.ListItineraries)
		r.Post("/", s.CreateItinerary)
		r.Get("/{id}", s.GetItinerary)
		r.Put("/{id}", s.UpdateItinerary)
		r.Put("/{id}/stops", s.ReplaceItineraryStops)
		r.Delete("/{id}", s.DeleteItinerary)
	})

	return r
}
