package models

import "time"

type Chat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	Title      string    `gorm:"type:varchar(200)" json:"title"`
	Category   string    `gorm:"type:varchar(50);default:general" json:"category"`
	IsFavorite bool      `gorm:"default:false" json:"is_favorite"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	Messages   []Message `json:"messages,omitempty" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}
