package dto

// SendMessageInput is the body of POST /api/chat. Type is "voice" when the
// message originated from speech input.
type SendMessageInput struct {
	Message  string `json:"message" binding:"required"`
	ChatID   *uint  `json:"chat_id"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

type ChatSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	CreatedAt  string `json:"created_at"`
	IsFavorite bool   `json:"is_favorite"`
	Category   string `json:"category"`
}

type MessageView struct {
	Content   string `json:"content"`
	Role      string `json:"role"`
	Timestamp string `json:"timestamp"`
	IsVoice   bool   `json:"is_voice"`
}

type ChatDetail struct {
	Chat     ChatSummary   `json:"chat"`
	Messages []MessageView `json:"messages"`
}

// SendMessageResult is the body returned from a completed chat turn.
// Audio carries base64 speech when the user has voice replies enabled.
type SendMessageResult struct {
	Reply  string `json:"reply"`
	Audio  string `json:"audio,omitempty"`
	ChatID uint   `json:"chat_id"`
}

type TranscribeInput struct {
	Audio string `json:"audio" binding:"required"`
}
