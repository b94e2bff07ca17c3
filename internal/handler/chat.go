package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"frauddetect/internal/llm"
)

type chatMessageRequest struct {
	Message string `json:"message"`
}

func chatID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id must be an integer"})
		return 0, false
	}
	return id, true
}

// PostChatMessage godoc
// @Summary      Ask the fraud advisor a question
// @Description  Appends the message to the chat transcript and returns the advisor's reply
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        chat_id  path  int                 true  "Chat identifier"
// @Param        message  body  chatMessageRequest  true  "User message"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/chat/{chat_id}/messages [post]
func (h *Handler) PostChatMessage(c *gin.Context) {
	if h.advisorService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "advisor service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-chat-message")
	defer span.End()

	id, ok := chatID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("chat.id", id))

	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}

	reply, err := h.advisorService.Ask(ctx, id, message)
	if err != nil {
		if llm.IsTransportError(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": analysisFailedMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GetChatMessages godoc
// @Summary      Get a chat's transcript
// @Tags         chat
// @Produce      json
// @Param        chat_id  path  int  true  "Chat identifier"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/chat/{chat_id}/messages [get]
func (h *Handler) GetChatMessages(c *gin.Context) {
	if h.advisorService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "advisor service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-chat-messages")
	defer span.End()

	id, ok := chatID(c)
	if !ok {
		return
	}

	messages := h.advisorService.History(ctx, id)
	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}

// ResetChat godoc
// @Summary      Forget a chat's transcript
// @Tags         chat
// @Produce      json
// @Param        chat_id  path  int  true  "Chat identifier"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/chat/{chat_id}/reset [post]
func (h *Handler) ResetChat(c *gin.Context) {
	if h.advisorService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "advisor service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.reset-chat")
	defer span.End()

	id, ok := chatID(c)
	if !ok {
		return
	}

	if err := h.advisorService.Reset(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
