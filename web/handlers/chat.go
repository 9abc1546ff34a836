package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"faq-agent/database"
	"faq-agent/engine"
	"faq-agent/fuzzy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatHandler struct {
	engine  *engine.Engine
	store   *database.PostgresStore // nil when persistence is disabled
	logger  *zap.Logger
	timeout time.Duration
}

type ChatRequest struct {
	Message string `json:"message" form:"message" binding:"required"`
	Role    string `json:"role" form:"role"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	Done      bool   `json:"done"`
	SessionID string `json:"session_id"`
}

func NewChatHandler(eng *engine.Engine, store *database.PostgresStore, logger *zap.Logger, timeout time.Duration) *ChatHandler {
	return &ChatHandler{
		engine:  eng,
		store:   store,
		logger:  logger,
		timeout: timeout,
	}
}

// SendMessage runs one utterance through the pipeline and returns the
// reply. Messages authored by the bot itself are dropped so relayed
// transcripts cannot trigger self-response loops. A farewell deactivates
// the session instead of terminating the process.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)

	var req ChatRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	role := strings.ToLower(req.Role)
	if role == "bot" || role == "assistant" {
		c.Status(http.StatusNoContent)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result := h.engine.HandleUtterance(ctx, req.Message)

	if h.store != nil {
		if err := h.store.RecordTurn(ctx, sessionID, req.Message, result.Reply, result.MatchedIndex); err != nil {
			h.logger.Warn("Failed to persist chat turn",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
		}
		if result.Done {
			if err := h.store.DeactivateSession(ctx, sessionID); err != nil {
				h.logger.Warn("Failed to deactivate session", zap.Error(err))
			}
		}
	}

	h.logger.Debug("Chat turn",
		zap.String("session_id", sessionID.String()),
		zap.Bool("matched", result.MatchedIndex != fuzzy.NoMatch),
		zap.Bool("done", result.Done))

	c.JSON(http.StatusOK, ChatResponse{
		Reply:     result.Reply,
		Done:      result.Done,
		SessionID: sessionID.String(),
	})
}

// History returns the stored transcript for the caller's session.
func (h *ChatHandler) History(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"messages": []any{}})
		return
	}

	sessionID := c.MustGet("sessionID").(uuid.UUID)
	messages, err := h.store.GetMessagesBySession(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to load session transcript", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transcript"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
