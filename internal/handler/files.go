package handler

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"irportal/internal/storage/files"
)

// FileHandler streams stored uploads
type FileHandler struct {
	store  files.Store
	logger *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(store files.Store, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		store:  store,
		logger: logger,
	}
}

// ServeFile streams a stored file inline, or as an attachment with ?download=1
// GET /uploads/{name}
func (h *FileHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	rc, obj, err := h.store.Open(r.Context(), name)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer rc.Close()

	disposition := "inline"
	if v := r.URL.Query().Get("download"); v == "1" || v == "true" {
		disposition = "attachment"
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": obj.Name}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("file stream interrupted", "name", name, "error", err)
	}
}
