package models

import (
	"time"
)

type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"unique;type:varchar(80);not null" json:"username"`
	Email        string      `gorm:"unique;type:varchar(120);not null" json:"email"`
	PasswordHash string      `gorm:"type:varchar(200);not null" json:"-"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	Chats        []Chat      `json:"chats,omitempty" gorm:"foreignKey:UserID"`
	Preference   *Preference `json:"preference,omitempty" gorm:"foreignKey:UserID"`
}
