package services

import (
	stderrors "errors"
	"strings"

	"aiva/constants"
	"aiva/errors"
	"aiva/models"

	"gorm.io/gorm"
)

// ChatService owns Chat and Message persistence
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// WithTx returns a ChatService bound to an in-flight transaction
func (s *ChatService) WithTx(tx *gorm.DB) *ChatService {
	return &ChatService{db: tx}
}

// ListChats returns the user's chats, newest first
func (s *ChatService) ListChats(userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&chats).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Could not list chats", err)
	}
	return chats, nil
}

// GetChat loads a chat and enforces ownership
func (s *ChatService) GetChat(chatID, userID uint) (models.Chat, error) {
	var chat models.Chat
	if err := s.db.First(&chat, chatID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Chat{}, errors.NewAppError(errors.ErrCodeNotFound, "Chat not found", errors.ErrChatNotFound)
		}
		return models.Chat{}, errors.NewAppError(errors.ErrCodeDBError, "Could not load chat", err)
	}
	if chat.UserID != userID {
		return models.Chat{}, errors.NewAppError(errors.ErrCodeForbidden, "Unauthorized", errors.ErrNotChatOwner)
	}
	return chat, nil
}

// CreateChat starts a new conversation for the user
func (s *ChatService) CreateChat(userID uint, title, category string) (models.Chat, error) {
	if category == "" {
		category = constants.DefaultCategory
	}
	chat := models.Chat{
		UserID:   userID,
		Title:    title,
		Category: category,
	}
	if err := s.db.Create(&chat).Error; err != nil {
		return models.Chat{}, errors.NewAppError(errors.ErrCodeDBError, "Could not create chat", err)
	}
	return chat, nil
}

// DeleteChat removes a chat and all of its messages in one transaction
func (s *ChatService) DeleteChat(chatID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chat{}, chatID).Error
	})
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Could not delete chat", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value
func (s *ChatService) ToggleFavorite(chatID uint) (bool, error) {
	var chat models.Chat
	if err := s.db.First(&chat, chatID).Error; err != nil {
		return false, errors.NewAppError(errors.ErrCodeNotFound, "Chat not found", errors.ErrChatNotFound)
	}
	chat.IsFavorite = !chat.IsFavorite
	if err := s.db.Model(&models.Chat{}).Where("id = ?", chatID).Update("is_favorite", chat.IsFavorite).Error; err != nil {
		return false, errors.NewAppError(errors.ErrCodeDBError, "Could not update chat", err)
	}
	return chat.IsFavorite, nil
}

// ListMessages returns a chat's messages in timestamp order
func (s *ChatService) ListMessages(chatID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("chat_id = ?", chatID).Order("timestamp ASC, id ASC").Find(&messages).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Could not list messages", err)
	}
	return messages, nil
}

// AppendMessage stores one turn. Messages are never updated afterwards.
func (s *ChatService) AppendMessage(chatID uint, content, role string, isVoice bool) (models.Message, error) {
	msg := models.Message{
		ChatID:  chatID,
		Content: content,
		Role:    role,
		IsVoice: isVoice,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return models.Message{}, errors.NewAppError(errors.ErrCodeDBError, "Could not store message", err)
	}
	return msg, nil
}

// DeriveTitle builds a chat title from the first message
func DeriveTitle(message string) string {
	runes := []rune(strings.TrimSpace(message))
	if len(runes) > constants.TitleMaxLen {
		runes = runes[:constants.TitleMaxLen]
	}
	return string(runes) + constants.TitleEllipsis
}
