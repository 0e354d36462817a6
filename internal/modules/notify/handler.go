package notify

import (
	"net/http"

	"psycenter/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the raw messaging utilities: a single ops-chat message
// and a broadcast to arbitrary chats behind the static API key.
type Handler struct {
	dispatcher *Dispatcher
}

func NewHandler(dispatcher *Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

func (h *Handler) RegisterSendRoute(rg *gin.RouterGroup) {
	rg.POST("/send", h.Send)
}

func (h *Handler) RegisterBulkRoute(rg *gin.RouterGroup) {
	rg.POST("/send-bulk", h.SendBulk)
}

type sendRequest struct {
	Message string `json:"message" binding:"required"`
}

type sendBulkRequest struct {
	ChatIDs []int64 `json:"chat_ids" binding:"required,min=1"`
	Message string  `json:"message" binding:"required"`
}

// Send отправляет произвольное сообщение в рабочий чат.
// @Router	/api/send [POST]
func (h *Handler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required")
		return
	}

	messageID, err := h.dispatcher.Send(c.Request.Context(), req.Message)
	if err != nil {
		if err == ErrChannelDisabled {
			response.Error(c, http.StatusServiceUnavailable, "CHANNEL_DISABLED", "Telegram is not configured")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SEND_FAILED", "Failed to send message")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message_id": messageID})
}

// SendBulk рассылает сообщение по списку чатов. Требует X-Api-Key.
// @Router	/api/send-bulk [POST]
func (h *Handler) SendBulk(c *gin.Context) {
	var req sendBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "chat_ids and message are required")
		return
	}

	sent, failed := h.dispatcher.Broadcast(c.Request.Context(), req.ChatIDs, req.Message)

	response.Success(c, http.StatusOK, gin.H{
		"sent":   sent,
		"failed": failed,
	})
}
