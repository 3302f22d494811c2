package handler

import (
	"net/http"
)

// Handlers groups everything mounted on the server mux
type Handlers struct {
	API     *FacadeHandler
	Uploads *UploadHandler
	Files   *FileHandler
	Health  *HealthHandler
}

// RegisterRoutes mounts the handlers on mux (Go 1.22+ patterns).
// Multipart routes are more specific than the /api/ catch-all and win.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	mux.HandleFunc("GET /uploads/{name}", h.Files.ServeFile)

	mux.HandleFunc("POST /api/grievances", h.Uploads.CreateGrievance)
	mux.HandleFunc("POST /api/admin/documents", h.Uploads.CreateDocument)
	mux.HandleFunc("POST /api/admin/policies", h.Uploads.CreatePolicy)

	// Everything else is routed by the facade
	mux.Handle(APIPrefix+"/", h.API)
}
