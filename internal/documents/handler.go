package documents

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"propdocs-backend/internal/intake"
	"propdocs-backend/internal/llm"
	"propdocs-backend/internal/qahistory"
	"propdocs-backend/internal/shared/server/middleware"
	"propdocs-backend/internal/shared/server/respond"
)

// maxRequestSize caps an upload batch; per-file limits come from the intake policy.
const maxRequestSize = 64 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc    *Service
	Policy intake.Policy
}

// NewHandler constructs a Handler with the default intake policy.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Policy: intake.DefaultPolicy()}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.DELETE("/documents/:id", h.delete)
	rg.POST("/documents/:id/questions", h.ask)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		fileHeaders = form.File["file"]
	}
	if len(fileHeaders) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	propertyID := strings.TrimSpace(c.PostForm("propertyId"))
	documentType := strings.TrimSpace(c.PostForm("documentType"))

	resp := UploadResponse{
		Documents: []DocumentResponse{},
		Rejected:  []RejectionResponse{},
	}

	// Decide per header, in part order. Filenames are not unique within a
	// batch, so the policy decision must stay attached to its header.
	for i, fh := range fileHeaders {
		if reasons := h.Policy.Check(i, intake.File{Name: fh.Filename, Size: fh.Size}); len(reasons) > 0 {
			resp.Rejected = append(resp.Rejected, RejectionResponse{
				FileName: fh.Filename,
				Reasons:  reasons,
			})
			continue
		}

		file, err := fh.Open()
		if err != nil {
			resp.Rejected = append(resp.Rejected, RejectionResponse{
				FileName: fh.Filename,
				Reasons:  []string{"unable to read file"},
			})
			continue
		}

		doc, err := h.Svc.Upload(c.Request.Context(), userID, UploadInput{
			FileName:     fh.Filename,
			PropertyID:   propertyID,
			DocumentType: documentType,
		}, file)
		file.Close()
		if err != nil {
			switch {
			case errors.Is(err, ErrUnauthenticated):
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
				return
			case errors.Is(err, ErrInvalidInput):
				resp.Rejected = append(resp.Rejected, RejectionResponse{
					FileName: fh.Filename,
					Reasons:  []string{err.Error()},
				})
			default:
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save document", nil)
				return
			}
			continue
		}

		c.Set("documentId", doc.ID)
		resp.Documents = append(resp.Documents, toResponse(doc))
	}

	status := http.StatusCreated
	if len(resp.Documents) == 0 {
		status = http.StatusOK
	}
	respond.JSON(c, status, resp)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch documents", nil)
		}
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	err := h.Svc.Delete(c.Request.Context(), userID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrUnauthenticated):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) ask(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "question is required", nil)
		return
	}

	entry, err := h.Svc.Ask(c.Request.Context(), userID, documentID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, llm.ErrAnalysis):
			respond.Error(c, http.StatusBadGateway, "analysis_failed", "failed to answer question", nil)
		case errors.Is(err, qahistory.ErrWriteFailed):
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record question", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to answer question", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toQAResponse(entry))
}
