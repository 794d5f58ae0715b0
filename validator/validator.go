package validator

import (
	"regexp"

	"aiva/dto"
	"aiva/errors"
)

// ValidateRegisterInput checks the registration payload
func ValidateRegisterInput(input *dto.RegisterInput) error {
	if input.Username == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Username must not be empty", nil)
	}

	if !isValidUsername(input.Username) {
		return errors.NewAppError(errors.ErrCodeValidation, "Username may only contain letters, digits, dots, dashes and underscores", nil)
	}

	if input.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email must not be empty", nil)
	}

	if !isValidEmail(input.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email is not valid", nil)
	}

	if input.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Password must not be empty", nil)
	}

	if len(input.Password) < 5 {
		return errors.NewAppError(errors.ErrCodeValidation, "Password must be at least 5 characters", nil)
	}

	return nil
}

// isValidEmail checks email format
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidUsername checks username format
func isValidUsername(username string) bool {
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9._-]{1,80}$`)
	return usernameRegex.MatchString(username)
}
