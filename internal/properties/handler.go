package properties

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propdocs-backend/internal/shared/server/middleware"
	"propdocs-backend/internal/shared/server/respond"
	"propdocs-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the properties repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches property routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties", h.create)
	rg.GET("/properties", h.list)
}

type createRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type propertyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	p := Property{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), p); err != nil {
		logStoreError(c.Request.Context(), "properties.create", err)
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create property", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	props, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logStoreError(c.Request.Context(), "properties.list", err)
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch properties", nil)
		return
	}

	resp := make([]propertyResponse, 0, len(props))
	for _, p := range props {
		resp = append(resp, toResponse(p))
	}
	respond.OK(c, resp)
}

func toResponse(p Property) propertyResponse {
	return propertyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
	}
}

func logStoreError(_ context.Context, op string, err error) {
	telemetry.Error("store.error", map[string]any{"op": op, "error": err.Error()})
}
