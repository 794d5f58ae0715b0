package models

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a chat. Rows are never updated after creation.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"index;not null" json:"chat_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	IsVoice   bool      `gorm:"default:false" json:"is_voice"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}
