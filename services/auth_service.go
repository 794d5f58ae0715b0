package services

import (
	stderrors "errors"
	"strings"

	"aiva/constants"
	"aiva/dto"
	"aiva/errors"
	"aiva/models"
	"aiva/services/logger"
	"aiva/validator"

	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, credential checks and session issuance
type AuthService struct {
	db     *gorm.DB
	logger logger.Logger
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AuthService{db: opts.DB, logger: l}
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// Register creates a user together with its default preference row in one
// transaction. Duplicate username or email is a conflict.
func (s *AuthService) Register(input dto.RegisterInput) (models.User, error) {
	if err := validator.ValidateRegisterInput(&input); err != nil {
		return models.User{}, err
	}

	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := s.db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeUserExists, "Username already exists", errors.ErrUsernameTaken)
	}
	if err := s.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeEmailExists, "Email already exists", errors.ErrEmailTaken)
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Could not create user", err)
		}
		pref := models.NewDefaultPreference(user.ID)
		if err := tx.Create(&pref).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Could not create preferences", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.logger.Info("registered user %s", user.Username)
	return user, nil
}

// Login verifies credentials and returns the user plus a session token
func (s *AuthService) Login(input dto.LoginInput) (models.User, string, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, "", errors.NewAppError(errors.ErrCodeUserNotFound, "Invalid username or password", errors.ErrInvalidPassword)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return models.User{}, "", errors.NewAppError(errors.ErrCodeInvalidPassword, "Invalid username or password", errors.ErrInvalidPassword)
	}

	token, err := GenerateToken(UserInfo{UserId: user.ID}, constants.SessionTTLMinutes)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// LoginGoogle resolves a verified Google account to a local user, creating
// the account (with default preferences) on first sign-in.
func (s *AuthService) LoginGoogle(googleUser dto.GoogleUser) (models.User, string, error) {
	email := strings.ToLower(googleUser.Email)

	var user models.User
	result := s.db.Where("email = ?", email).First(&user)
	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		created, err := s.createGoogleUser(googleUser.Name, email)
		if err != nil {
			return models.User{}, "", err
		}
		user = created
	} else if result.Error != nil {
		return models.User{}, "", errors.NewAppError(errors.ErrCodeDBError, "Could not look up user", result.Error)
	}

	token, err := GenerateToken(UserInfo{UserId: user.ID}, constants.SessionTTLMinutes)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

func (s *AuthService) createGoogleUser(name, email string) (models.User, error) {
	// Google accounts get a random local password; they always sign in
	// through the ID token flow.
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return models.User{}, err
	}
	hashedPassword, err := HashPassword(hex.EncodeToString(raw))
	if err != nil {
		return models.User{}, err
	}

	username := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	if name != "" {
		username = strings.ToLower(strings.ReplaceAll(name, " ", "."))
	}
	var taken models.User
	if err := s.db.Where("username = ?", username).First(&taken).Error; err == nil {
		username = username + "." + hex.EncodeToString(raw[:3])
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Could not create user", err)
		}
		pref := models.NewDefaultPreference(user.ID)
		return tx.Create(&pref).Error
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}
