package services

import (
	"time"

	"aiva/config"
	"aiva/constants"
	"aiva/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserInfo struct {
	UserId uint `json:"userid"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

func secretKey() []byte {
	return []byte(config.GetEnv("SECRET_KEY"))
}

// GenerateToken issues a signed session token for the user. The jti claim
// identifies the session so logout can revoke it.
func GenerateToken(userInfo UserInfo, expiryMinutes int) (string, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey())
}

// ParseToken verifies a session token and returns its claims
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Unexpected signing method", nil)
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token is not valid", err)
	}

	if !token.Valid || claims.UserInfo.UserId == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token carries no user", nil)
	}

	return claims, nil
}

// SetTokenCookie attaches the session token to the response
func SetTokenCookie(c *gin.Context, accessToken string) {
	c.SetCookie(
		constants.AccessTokenCookie,
		accessToken,
		constants.SessionTTLMinutes*60,
		"/",
		"",
		false,
		true,
	)
}

// ClearTokenCookie drops the session cookie
func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(constants.AccessTokenCookie, "", -1, "/", "", false, true)
}
