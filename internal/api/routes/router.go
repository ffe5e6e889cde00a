package routes

import (
	"net/http"

	"github.com/CoderFake/healthcare-system/internal/api/handlers"
	"github.com/CoderFake/healthcare-system/internal/api/middleware"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler        *handlers.AuthHandler
	patientHandler     *handlers.PatientHandler
	doctorHandler      *handlers.DoctorHandler
	appointmentHandler *handlers.AppointmentHandler
	recordHandler      *handlers.RecordHandler
	settingHandler     *handlers.SettingHandler
	maintenanceHandler *handlers.MaintenanceHandler

	tokens         middleware.TokenParser
	allowedOrigins []string
	metrics        *observability.Metrics
}

// Handlers groups the handlers served by the router
type Handlers struct {
	Auth        *handlers.AuthHandler
	Patient     *handlers.PatientHandler
	Doctor      *handlers.DoctorHandler
	Appointment *handlers.AppointmentHandler
	Record      *handlers.RecordHandler
	Setting     *handlers.SettingHandler
	Maintenance *handlers.MaintenanceHandler
}

// NewRouter creates a new router
func NewRouter(h Handlers, tokens middleware.TokenParser, allowedOrigins []string, metrics *observability.Metrics) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		authHandler:        h.Auth,
		patientHandler:     h.Patient,
		doctorHandler:      h.Doctor,
		appointmentHandler: h.Appointment,
		recordHandler:      h.Record,
		settingHandler:     h.Setting,
		maintenanceHandler: h.Maintenance,
		tokens:             tokens,
		allowedOrigins:     allowedOrigins,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Session and account endpoints
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)
	r.mux.HandleFunc("GET /api/auth/me", r.authHandler.Me)
	r.mux.HandleFunc("POST /api/auth/password", r.authHandler.ChangePassword)
	r.mux.HandleFunc("POST /api/auth/reset", middleware.RequireAdmin(r.authHandler.ResetPassword))
	r.mux.HandleFunc("GET /api/accounts", middleware.RequireAdmin(r.authHandler.ListAccounts))
	r.mux.HandleFunc("POST /api/accounts", middleware.RequireAdmin(r.authHandler.CreateAccount))
	r.mux.HandleFunc("DELETE /api/accounts/{username}", middleware.RequireAdmin(r.authHandler.DeleteAccount))

	// Patient endpoints
	r.mux.HandleFunc("GET /api/patients", r.patientHandler.List)
	r.mux.HandleFunc("POST /api/patients", r.patientHandler.Create)
	r.mux.HandleFunc("GET /api/patients/search", r.patientHandler.Search)
	r.mux.HandleFunc("GET /api/patients/lookup", r.patientHandler.GetByNationalID)
	r.mux.HandleFunc("GET /api/patients/{id}", r.patientHandler.Get)
	r.mux.HandleFunc("PUT /api/patients/{id}", r.patientHandler.Update)
	r.mux.HandleFunc("DELETE /api/patients/{id}", r.patientHandler.Delete)
	r.mux.HandleFunc("GET /api/patients/{id}/appointments", r.patientHandler.Appointments)
	r.mux.HandleFunc("GET /api/patients/{id}/records", r.patientHandler.MedicalRecords)

	// Doctor endpoints
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.List)
	r.mux.HandleFunc("POST /api/doctors", r.doctorHandler.Create)
	r.mux.HandleFunc("GET /api/doctors/search", r.doctorHandler.Search)
	r.mux.HandleFunc("GET /api/doctors/lookup", r.doctorHandler.GetByNationalID)
	r.mux.HandleFunc("GET /api/specialties/{specialty}/doctors", r.doctorHandler.ListBySpecialty)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.Get)
	r.mux.HandleFunc("PUT /api/doctors/{id}", r.doctorHandler.Update)
	r.mux.HandleFunc("DELETE /api/doctors/{id}", r.doctorHandler.Delete)
	r.mux.HandleFunc("GET /api/doctors/{id}/upcoming", r.doctorHandler.Upcoming)
	r.mux.HandleFunc("GET /api/doctors/{id}/appointments", r.doctorHandler.Appointments)
	r.mux.HandleFunc("GET /api/doctors/{id}/records", r.doctorHandler.MedicalRecords)

	// Appointment endpoints
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.List)
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.BookAppointment)
	r.mux.HandleFunc("GET /api/appointments/date/{date}", r.appointmentHandler.ListByDate)
	r.mux.HandleFunc("GET /api/appointments/doctor/{id}", r.appointmentHandler.ListByDoctor)
	r.mux.HandleFunc("GET /api/appointments/patient/{id}", r.appointmentHandler.ListByPatient)
	r.mux.HandleFunc("GET /api/appointments/availability", r.appointmentHandler.GetAvailability)
	r.mux.HandleFunc("GET /api/appointments/slots", r.appointmentHandler.GetSlots)
	r.mux.HandleFunc("GET /api/appointments/{id}", r.appointmentHandler.Get)
	r.mux.HandleFunc("PUT /api/appointments/{id}", r.appointmentHandler.Update)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.appointmentHandler.Delete)
	r.mux.HandleFunc("PATCH /api/appointments/{id}/status", r.appointmentHandler.UpdateStatus)
	r.mux.HandleFunc("POST /api/appointments/{id}/records", r.appointmentHandler.CreateMedicalRecord)

	// Medical record endpoints
	r.mux.HandleFunc("POST /api/records", r.recordHandler.Create)
	r.mux.HandleFunc("GET /api/records/{id}", r.recordHandler.Get)
	r.mux.HandleFunc("PUT /api/records/{id}", r.recordHandler.Update)
	r.mux.HandleFunc("DELETE /api/records/{id}", r.recordHandler.Delete)

	// Settings endpoints
	r.mux.HandleFunc("GET /api/settings", r.settingHandler.List)
	r.mux.HandleFunc("GET /api/settings/{key}", r.settingHandler.Get)
	r.mux.HandleFunc("PUT /api/settings/{key}", middleware.RequireAdmin(r.settingHandler.Set))

	// Maintenance, dashboard and export endpoints
	r.mux.HandleFunc("POST /api/maintenance/backup", middleware.RequireAdmin(r.maintenanceHandler.Backup))
	r.mux.HandleFunc("POST /api/maintenance/restore", middleware.RequireAdmin(r.maintenanceHandler.Restore))
	r.mux.HandleFunc("GET /api/dashboard", r.maintenanceHandler.Dashboard)
	r.mux.HandleFunc("GET /api/export/patients.xlsx", r.maintenanceHandler.ExportPatients)
	r.mux.HandleFunc("GET /api/export/appointments.xlsx", r.maintenanceHandler.ExportAppointments)

	// Apply middleware in reverse order (last middleware wraps first).
	// Observability sits next to the mux so it sees the matched pattern.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.AuthMiddleware(r.tokens)(handler)
	handler = middleware.LoggingMiddleware(handler)
	// CORS wraps everything so rejected requests still carry CORS headers
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
