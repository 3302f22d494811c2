package handler

import (
	"errors"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"irportal/internal/config"
	"irportal/internal/domain"
	"irportal/internal/domain/models"
	"irportal/internal/facade"
	"irportal/internal/httputil"
	"irportal/internal/service"
	"irportal/internal/storage/files"
	"irportal/internal/upload"
)

// Multipart form fields carrying files
const (
	attachmentsField = "attachments"
	fileField        = "file"
)

// UploadHandler accepts multipart forms, stores their files and then
// dispatches the resulting insert shape through the facade. JSON bodies
// on the same routes go straight to the facade.
type UploadHandler struct {
	api    *FacadeHandler
	files  files.Store
	logger *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(api *FacadeHandler, store files.Store, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		api:    api,
		files:  store,
		logger: logger,
	}
}

// CreateGrievance accepts the public grievance form with up to five attachments
// POST /api/grievances
func (h *UploadHandler) CreateGrievance(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		h.api.ServeHTTP(w, r)
		return
	}

	maxBody := int64(upload.GrievanceRules.MaxFiles)*upload.GrievanceRules.MaxFileSize + formOverhead
	if err := parseMultipart(w, r, maxBody); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fhs := r.MultipartForm.File[attachmentsField]
	if err := upload.GrievanceRules.Check(attachmentsField, fhs); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	req := &models.NewGrievance{
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		Phone:         r.FormValue("phone"),
		GrievanceType: optionalForm(r, "grievanceType"),
		Subject:       r.FormValue("subject"),
		Description:   r.FormValue("description"),
	}
	if err := service.ValidateNewGrievance(req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	saved, err := upload.Save(r.Context(), h.files, fhs)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	req.Attachments = make([]models.Attachment, 0, len(saved))
	for _, s := range saved {
		req.Attachments = append(req.Attachments, s.Attachment())
	}

	h.dispatchWithFiles(w, r, "/grievances", req, saved)
}

// CreateDocument uploads a document file and records it
// POST /api/admin/documents
func (h *UploadHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		h.api.ServeHTTP(w, r)
		return
	}

	if err := parseMultipart(w, r, upload.DocumentRules.MaxFileSize+formOverhead); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := &models.NewDocument{
		Title:       r.FormValue("title"),
		Type:        models.DocumentType(strings.ToUpper(strings.TrimSpace(r.FormValue("type")))),
		Description: r.FormValue("description"),
		FileURL:     r.FormValue("fileUrl"),
		FileName:    r.FormValue("fileName"),
	}
	if v := strings.TrimSpace(r.FormValue("fiscalYear")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, h.logger, formError("fiscalYear", "must be an integer"))
			return
		}
		req.FiscalYear = &year
	}

	fhs := r.MultipartForm.File[fileField]
	if err := upload.DocumentRules.Check(fileField, fhs); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	saved, err := upload.Save(r.Context(), h.files, fhs)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if len(saved) == 1 {
		req.FileURL = saved[0].URL
		req.FileName = saved[0].Original
		req.FileSize = saved[0].Size
	}

	h.dispatchWithFiles(w, r, "/admin/documents", req, saved)
}

// CreatePolicy uploads a policy file and records it
// POST /api/admin/policies
func (h *UploadHandler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	if !isMultipart(r) {
		h.api.ServeHTTP(w, r)
		return
	}

	if err := parseMultipart(w, r, upload.PolicyRules.MaxFileSize+formOverhead); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := &models.NewPolicy{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		FileURL:     r.FormValue("fileUrl"),
		FileName:    r.FormValue("fileName"),
	}
	if v := strings.TrimSpace(r.FormValue("effectiveDate")); v != "" {
		effective, err := parseDate(v)
		if err != nil {
			handleError(w, r, h.logger, formError("effectiveDate", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"))
			return
		}
		req.EffectiveDate = effective
	}

	fhs := r.MultipartForm.File[fileField]
	if err := upload.PolicyRules.Check(fileField, fhs); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	saved, err := upload.Save(r.Context(), h.files, fhs)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if len(saved) == 1 {
		req.FileURL = saved[0].URL
		req.FileName = saved[0].Original
	}

	h.dispatchWithFiles(w, r, "/admin/policies", req, saved)
}

// dispatchWithFiles sends payload to the facade and removes the stored
// files again when the record is rejected.
func (h *UploadHandler) dispatchWithFiles(w http.ResponseWriter, r *http.Request, path string, payload any, saved []upload.Saved) {
	result, err := h.api.facade.Dispatch(r.Context(), facade.Request{
		Verb:    http.MethodPost,
		Path:    path,
		Payload: payload,
	})
	if err != nil {
		upload.Discard(r.Context(), h.files, saved)
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Info("upload accepted", "path", path, "files", len(saved))
	httputil.RespondJSON(w, http.StatusCreated, result)
}

// formOverhead leaves room for the text fields and multipart framing
const formOverhead = 1 << 20

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func parseMultipart(w http.ResponseWriter, r *http.Request, maxBody int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(config.MaxMultipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			return formError("body", "multipart form too large")
		}
		return formError("body", "invalid multipart form")
	}
	return nil
}

func optionalForm(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

func formError(field, message string) error {
	return domain.NewValidationError(map[string]string{field: message})
}
