package services

import (
	"context"
	"fmt"
	"sync"

	"aiva/constants"
	"aiva/dto"
	"aiva/models"
	"aiva/services/logger"

	"gorm.io/gorm"
)

// Completer is the upstream completion contract used by the orchestrator
type Completer interface {
	Complete(ctx context.Context, model string, history []CompletionMessage) (string, error)
}

// AssistantService drives one chat turn: resolve the chat, persist the user
// message, call the completion endpoint and persist the reply.
type AssistantService struct {
	db          *gorm.DB
	chats       *ChatService
	prefs       *PreferenceService
	completion  Completer
	synthesizer Synthesizer
	logger      logger.Logger
	locks       sync.Map
}

type AssistantServiceOptions struct {
	DB          *gorm.DB
	Chats       *ChatService
	Prefs       *PreferenceService
	Completion  Completer
	Synthesizer Synthesizer
	Logger      logger.Logger
}

func NewAssistantService(opts AssistantServiceOptions) *AssistantService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AssistantService{
		db:          opts.DB,
		chats:       opts.Chats,
		prefs:       opts.Prefs,
		completion:  opts.Completion,
		synthesizer: opts.Synthesizer,
		logger:      l,
	}
}

// lock serializes turns per conversation. New conversations lock on the
// user instead, so a double-submit cannot create two chats.
func (s *AssistantService) lock(key string) func() {
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// SendMessage runs one full assistant turn. The user message is committed
// before the upstream call, so it survives any completion failure.
func (s *AssistantService) SendMessage(ctx context.Context, userID uint, input dto.SendMessageInput) (dto.SendMessageResult, error) {
	var lockKey string
	if input.ChatID != nil {
		lockKey = fmt.Sprintf("chat:%d", *input.ChatID)
	} else {
		lockKey = fmt.Sprintf("user:%d", userID)
	}
	unlock := s.lock(lockKey)
	defer unlock()

	isVoice := input.Type == "voice"

	var chat models.Chat
	err := s.db.Transaction(func(tx *gorm.DB) error {
		chats := s.chats.WithTx(tx)

		var err error
		if input.ChatID != nil {
			chat, err = chats.GetChat(*input.ChatID, userID)
		} else {
			chat, err = chats.CreateChat(userID, DeriveTitle(input.Message), input.Category)
		}
		if err != nil {
			return err
		}

		_, err = chats.AppendMessage(chat.ID, input.Message, models.RoleUser, isVoice)
		return err
	})
	if err != nil {
		return dto.SendMessageResult{}, err
	}

	pref, err := s.prefs.Get(userID)
	if err != nil {
		return dto.SendMessageResult{}, err
	}

	window, err := s.historyWindow(chat.ID)
	if err != nil {
		return dto.SendMessageResult{}, err
	}

	reply, err := s.completion.Complete(ctx, pref.ModelPreference, window)
	if err != nil {
		s.logger.Error("completion failed for chat %d: %v", chat.ID, err)
		return dto.SendMessageResult{}, err
	}

	if _, err := s.chats.AppendMessage(chat.ID, reply, models.RoleAssistant, false); err != nil {
		return dto.SendMessageResult{}, err
	}

	result := dto.SendMessageResult{
		Reply:  reply,
		ChatID: chat.ID,
	}

	if pref.VoiceResponse && s.synthesizer != nil {
		audio, err := s.synthesizer.Synthesize(ctx, reply, pref.Language)
		if err != nil {
			// The text reply already stands; a failed synthesis only
			// costs the audio payload.
			s.logger.Error("speech synthesis failed for chat %d: %v", chat.ID, err)
		} else {
			result.Audio = audio
		}
	}

	return result, nil
}

// historyWindow builds the bounded recent-history slice sent upstream
func (s *AssistantService) historyWindow(chatID uint) ([]CompletionMessage, error) {
	messages, err := s.chats.ListMessages(chatID)
	if err != nil {
		return nil, err
	}

	if len(messages) > constants.HistoryWindow {
		messages = messages[len(messages)-constants.HistoryWindow:]
	}

	window := make([]CompletionMessage, 0, len(messages))
	for _, msg := range messages {
		window = append(window, CompletionMessage{Role: msg.Role, Content: msg.Content})
	}
	return window, nil
}
