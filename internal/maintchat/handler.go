package maintchat

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"propdocs-backend/internal/llm"
	"propdocs-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches maintenance chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/maintenance/chat", h.chat)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages       []chatMessage  `json:"messages"`
	RequestDetails RequestDetails `json:"requestDetails"`
}

type chatResponse struct {
	Reply           string `json:"reply"`
	NeedsContractor bool   `json:"needsContractor"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(req.Messages) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "messages are required", nil)
		return
	}

	history := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := strings.TrimSpace(m.Role)
		if role != "user" && role != "assistant" {
			respond.Error(c, http.StatusBadRequest, "validation_error", "message role must be user or assistant", nil)
			return
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}

	reply, err := h.Svc.Chat(c.Request.Context(), req.RequestDetails, history)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrAnalysis):
			respond.Error(c, http.StatusBadGateway, "analysis_failed", "assistant is unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "assistant is unavailable", nil)
		}
		return
	}

	respond.OK(c, chatResponse{
		Reply:           reply.Text,
		NeedsContractor: reply.NeedsContractor,
	})
}
