package dto

// PreferenceInput is a partial preference update. Only the five recognized
// fields exist here; anything else in the request body is dropped on bind.
type PreferenceInput struct {
	Theme               *string `json:"theme"`
	VoiceResponse       *bool   `json:"voice_response"`
	Language            *string `json:"language"`
	NotificationEnabled *bool   `json:"notification_enabled"`
	ModelPreference     *string `json:"model_preference"`
}

type PreferenceView struct {
	Theme               string `json:"theme"`
	VoiceResponse       bool   `json:"voice_response"`
	Language            string `json:"language"`
	NotificationEnabled bool   `json:"notification_enabled"`
	ModelPreference     string `json:"model_preference"`
}
