package api

import (
	"database/sql"

	"github.com/gorilla/mux"

	"sitework-backend/internal/repository/postgres"
	"sitework-backend/internal/security"
	"sitework-backend/internal/service"
)

// Services bundles the handlers' dependencies for route setup.
type Services struct {
	Inventory   service.InventoryService
	Assignments service.AssignmentService
	Projects    service.ProjectService
	Records     service.RecordService
	Reports     service.ReportService
}

func SetupRoutes(db *sql.DB, svcs Services, tokens security.TokenManager, feed *postgres.ChangeFeed, version, buildTime string) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	systemHandler := NewSystemHandler(db)
	authHandler := NewAuthHandler(tokens)
	toolsHandler := NewToolsHandler(svcs.Inventory)
	assignmentsHandler := NewAssignmentsHandler(svcs.Assignments)
	projectsHandler := NewProjectsHandler(svcs.Projects)
	recordsHandler := NewRecordsHandler(svcs.Records)
	reportsHandler := NewReportsHandler(svcs.Reports)
	eventsHandler := NewEventsHandler(feed)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/token", authHandler.Token).Methods("POST")

	// API v1 protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(AuthMiddleware(tokens))

	// Tool inventory
	apiV1.HandleFunc("/tools", toolsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/tools", toolsHandler.List).Methods("GET")
	apiV1.HandleFunc("/tools/available", toolsHandler.ListAvailable).Methods("GET")
	apiV1.HandleFunc("/tools/lookup/{serial}", toolsHandler.Lookup).Methods("GET")
	apiV1.HandleFunc("/tools/units/{serial}/status", toolsHandler.SetUnitStatus).Methods("PUT")
	apiV1.HandleFunc("/tools/{id}", toolsHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/tools/{id}", toolsHandler.Delete).Methods("DELETE")

	// Assignments
	apiV1.HandleFunc("/assignments", assignmentsHandler.Assign).Methods("POST")
	apiV1.HandleFunc("/assignments/bulk", assignmentsHandler.AssignMany).Methods("POST")
	apiV1.HandleFunc("/assignments/{id}/return", assignmentsHandler.Return).Methods("POST")

	// Projects
	apiV1.HandleFunc("/projects", projectsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/projects", projectsHandler.List).Methods("GET")
	apiV1.HandleFunc("/projects/{id}", projectsHandler.Get).Methods("GET")
	apiV1.HandleFunc("/projects/{id}", projectsHandler.Update).Methods("PUT")
	apiV1.HandleFunc("/projects/{id}", projectsHandler.Delete).Methods("DELETE")
	apiV1.HandleFunc("/projects/{id}/assignments", assignmentsHandler.ListForProject).Methods("GET")
	apiV1.HandleFunc("/projects/{id}/assignments/export", assignmentsHandler.ExportForProject).Methods("GET")

	// Material and labor records
	apiV1.HandleFunc("/projects/{id}/records", recordsHandler.Create).Methods("POST")
	apiV1.HandleFunc("/projects/{id}/records", recordsHandler.ListForProject).Methods("GET")
	apiV1.HandleFunc("/projects/{id}/records/summary", recordsHandler.Summary).Methods("GET")
	apiV1.HandleFunc("/projects/{id}/records/export", recordsHandler.Export).Methods("GET")
	apiV1.HandleFunc("/records/{id}", recordsHandler.Delete).Methods("DELETE")

	// Reports
	apiV1.HandleFunc("/reports/utilization", reportsHandler.Utilization).Methods("GET")
	apiV1.HandleFunc("/reports/maintenance", reportsHandler.MaintenanceDue).Methods("GET")

	// Change feed
	apiV1.HandleFunc("/events", eventsHandler.Stream).Methods("GET")

	return r
}
