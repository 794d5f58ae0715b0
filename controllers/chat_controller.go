package controllers

import (
	"strconv"
	"time"

	"aiva/dto"
	"aiva/middleware"
	"aiva/models"
	"aiva/response"
	"aiva/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chats       *services.ChatService
	assistant   *services.AssistantService
	transcriber services.Transcriber
}

func NewChatController(chats *services.ChatService, assistant *services.AssistantService, transcriber services.Transcriber) *ChatController {
	return &ChatController{chats: chats, assistant: assistant, transcriber: transcriber}
}

func chatSummary(chat models.Chat) dto.ChatSummary {
	return dto.ChatSummary{
		ID:         chat.ID,
		Title:      chat.Title,
		CreatedAt:  chat.CreatedAt.Format(time.RFC3339),
		IsFavorite: chat.IsFavorite,
		Category:   chat.Category,
	}
}

func chatIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c)
		return 0, false
	}
	return uint(id), true
}

// GetChats handles GET /api/chats
func (ctl *ChatController) GetChats(c *gin.Context) {
	userID := middleware.UserID(c)

	chats, err := ctl.chats.ListChats(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	summaries := make([]dto.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summaries = append(summaries, chatSummary(chat))
	}
	response.Success(c, summaries)
}

// GetChat handles GET /api/chat/:id
func (ctl *ChatController) GetChat(c *gin.Context) {
	userID := middleware.UserID(c)
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	chat, err := ctl.chats.GetChat(chatID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	messages, err := ctl.chats.ListMessages(chatID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	views := make([]dto.MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, dto.MessageView{
			Content:   msg.Content,
			Role:      msg.Role,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
			IsVoice:   msg.IsVoice,
		})
	}

	response.Success(c, dto.ChatDetail{
		Chat:     chatSummary(chat),
		Messages: views,
	})
}

// SendMessage handles POST /api/chat, one full assistant turn
func (ctl *ChatController) SendMessage(c *gin.Context) {
	userID := middleware.UserID(c)

	var input dto.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid chat payload")
		return
	}

	result, err := ctl.assistant.SendMessage(c.Request.Context(), userID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, result)
}

// ToggleFavorite handles POST /api/chat/:id/favorite
func (ctl *ChatController) ToggleFavorite(c *gin.Context) {
	userID := middleware.UserID(c)
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	if _, err := ctl.chats.GetChat(chatID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	isFavorite, err := ctl.chats.ToggleFavorite(chatID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"is_favorite": isFavorite})
}

// DeleteChat handles DELETE /api/chat/:id
func (ctl *ChatController) DeleteChat(c *gin.Context) {
	userID := middleware.UserID(c)
	chatID, ok := chatIDParam(c)
	if !ok {
		return
	}

	if _, err := ctl.chats.GetChat(chatID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	if err := ctl.chats.DeleteChat(chatID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Message(c, "Chat deleted")
}

// Transcribe handles POST /api/transcribe with base64 audio
func (ctl *ChatController) Transcribe(c *gin.Context) {
	var input dto.TranscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid audio payload")
		return
	}

	text, err := ctl.transcriber.Transcribe(c.Request.Context(), input.Audio)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"text": text})
}
