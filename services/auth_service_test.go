package services

import (
	"os"
	"testing"

	"aiva/dto"
	"aiva/errors"
	"aiva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// GenerateToken and ParseToken need a signing key during tests
	os.Setenv("SECRET_KEY", "test-secret")
}

func TestRegisterCreatesUserWithDefaultPreference(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(AuthServiceOptions{DB: db})

	user, err := svc.Register(dto.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "pw123", user.PasswordHash)

	var pref models.Preference
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&pref).Error)
	assert.Equal(t, models.DefaultTheme, pref.Theme)
	assert.Equal(t, models.DefaultModel, pref.ModelPreference)
	assert.False(t, pref.VoiceResponse)
	assert.True(t, pref.NotificationEnabled)
}

func TestRegisterDuplicateUsernameAndEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(AuthServiceOptions{DB: db})

	_, err := svc.Register(dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, err = svc.Register(dto.RegisterInput{Username: "alice", Email: "other@x.com", Password: "pw123"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUserExists))

	_, err = svc.Register(dto.RegisterInput{Username: "bob", Email: "a@x.com", Password: "pw123"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeEmailExists))
}

func TestRegisterRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(AuthServiceOptions{DB: db})

	_, err := svc.Register(dto.RegisterInput{Username: "alice", Email: "not-an-email", Password: "pw123"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidEmail))

	_, err = svc.Register(dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestLoginIssuesValidToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(AuthServiceOptions{DB: db})

	registered, err := svc.Register(dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	user, token, err := svc.Login(dto.LoginInput{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserInfo.UserId)
	assert.NotEmpty(t, claims.Id)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(AuthServiceOptions{DB: db})

	_, err := svc.Register(dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, _, err = svc.Login(dto.LoginInput{Username: "alice", Password: "wrong"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPassword))

	_, _, err = svc.Login(dto.LoginInput{Username: "nobody", Password: "pw123"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUserNotFound))
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}
