package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/service"
	"github.com/rideshareai/rideshare-backend-go/pkg/response"
)

// ChatHandler handles the chat endpoints
type ChatHandler struct {
	chat    *service.ChatService
	company *service.CompanyChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *service.ChatService, company *service.CompanyChatService) *ChatHandler {
	return &ChatHandler{chat: chat, company: company}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(c *gin.Context) {
	question, ok := bindQuestion(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.chat.Chat(c.Request.Context(), question))
}

// CompanyChat handles POST /company-chat
func (h *ChatHandler) CompanyChat(c *gin.Context) {
	question, ok := bindQuestion(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.company.Chat(c.Request.Context(), question))
}

func bindQuestion(c *gin.Context) (string, bool) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return "", false
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		response.BadRequest(c, "Question must not be empty", nil)
		return "", false
	}
	return question, true
}
