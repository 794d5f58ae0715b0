package controllers

import (
	"aiva/dto"
	"aiva/middleware"
	"aiva/response"
	"aiva/services"

	"github.com/gin-gonic/gin"
)

type PreferenceController struct {
	prefs *services.PreferenceService
}

func NewPreferenceController(prefs *services.PreferenceService) *PreferenceController {
	return &PreferenceController{prefs: prefs}
}

// GetPreferences handles GET /api/preferences
func (ctl *PreferenceController) GetPreferences(c *gin.Context) {
	userID := middleware.UserID(c)

	pref, err := ctl.prefs.Get(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, dto.PreferenceView{
		Theme:               pref.Theme,
		VoiceResponse:       pref.VoiceResponse,
		Language:            pref.Language,
		NotificationEnabled: pref.NotificationEnabled,
		ModelPreference:     pref.ModelPreference,
	})
}

// UpdatePreferences handles PUT /api/preferences with a partial body.
// Unrecognized keys are dropped during binding rather than rejected.
func (ctl *PreferenceController) UpdatePreferences(c *gin.Context) {
	userID := middleware.UserID(c)

	var input dto.PreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid preferences payload")
		return
	}

	if _, err := ctl.prefs.Update(userID, input); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Message(c, "Preferences updated")
}
