package models

// Preference defaults
const (
	DefaultTheme = "dark"
	DefaultLang  = "en"
	DefaultModel = "mistral-small"
)

type Preference struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	UserID              uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Theme               string `gorm:"type:varchar(20);default:dark" json:"theme"`
	VoiceResponse       bool   `gorm:"default:false" json:"voice_response"`
	Language            string `gorm:"type:varchar(10);default:en" json:"language"`
	NotificationEnabled bool   `gorm:"default:true" json:"notification_enabled"`
	ModelPreference     string `gorm:"type:varchar(50);default:mistral-small" json:"model_preference"`
}

// NewDefaultPreference returns the preference row created with every new user.
func NewDefaultPreference(userID uint) Preference {
	return Preference{
		UserID:              userID,
		Theme:               DefaultTheme,
		VoiceResponse:       false,
		Language:            DefaultLang,
		NotificationEnabled: true,
		ModelPreference:     DefaultModel,
	}
}
