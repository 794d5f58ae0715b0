package services

import (
	"fmt"

	"aiva/constants"
	"aiva/dto"
	"aiva/errors"
	"aiva/models"

	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

// PreferenceService owns the per-user preference record
type PreferenceService struct {
	db      *gorm.DB
	matcher *closestmatch.ClosestMatch
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{
		db:      db,
		matcher: closestmatch.New(constants.KnownModels, []int{2, 3}),
	}
}

// Get returns the user's preference record
func (s *PreferenceService) Get(userID uint) (models.Preference, error) {
	var pref models.Preference
	if err := s.db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return models.Preference{}, errors.NewAppError(errors.ErrCodeNotFound, "Preferences not found", err)
	}
	return pref, nil
}

// Update applies a partial preference update. Only the five recognized
// fields are merged; anything else in the request never reaches this point.
func (s *PreferenceService) Update(userID uint, input dto.PreferenceInput) (models.Preference, error) {
	pref, err := s.Get(userID)
	if err != nil {
		return models.Preference{}, err
	}

	if input.ModelPreference != nil {
		if err := s.validateModel(*input.ModelPreference); err != nil {
			return models.Preference{}, err
		}
		pref.ModelPreference = *input.ModelPreference
	}
	if input.Theme != nil {
		pref.Theme = *input.Theme
	}
	if input.VoiceResponse != nil {
		pref.VoiceResponse = *input.VoiceResponse
	}
	if input.Language != nil {
		pref.Language = *input.Language
	}
	if input.NotificationEnabled != nil {
		pref.NotificationEnabled = *input.NotificationEnabled
	}

	if err := s.db.Save(&pref).Error; err != nil {
		return models.Preference{}, errors.NewAppError(errors.ErrCodeDBError, "Could not update preferences", err)
	}
	return pref, nil
}

// validateModel checks the model id against the known list and suggests the
// closest known model when the distance is small enough to look like a typo.
func (s *PreferenceService) validateModel(model string) error {
	for _, known := range constants.KnownModels {
		if model == known {
			return nil
		}
	}

	msg := fmt.Sprintf("Unknown model %q", model)
	candidate := s.matcher.Closest(model)
	if candidate != "" {
		distance := levenshtein.DistanceForStrings([]rune(model), []rune(candidate), levenshtein.DefaultOptions)
		if distance <= len(candidate)/2 {
			msg = fmt.Sprintf("Unknown model %q, did you mean %q?", model, candidate)
		}
	}
	return errors.NewAppError(errors.ErrCodeValidation, msg, nil)
}
