package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"aiva/config"
	"aiva/dto"
	"aiva/response"
	"aiva/services"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

type AuthController struct {
	auth     *services.AuthService
	sessions *services.SessionService
}

func NewAuthController(auth *services.AuthService, sessions *services.SessionService) *AuthController {
	return &AuthController{auth: auth, sessions: sessions}
}

// Register handles POST /register
func (ctl *AuthController) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid registration payload")
		return
	}

	if _, err := ctl.auth.Register(input); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Message(c, "Registration successful")
}

// Login handles POST /login. Non-JSON bodies are rejected with 415.
func (ctl *AuthController) Login(c *gin.Context) {
	if !strings.HasPrefix(c.ContentType(), "application/json") {
		response.UnsupportedMediaType(c)
		return
	}

	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Unauthorized(c, "Invalid username or password")
		return
	}

	_, token, err := ctl.auth.Login(input)
	if err != nil {
		response.Unauthorized(c, "Invalid username or password")
		return
	}

	services.SetTokenCookie(c, token)
	response.Message(c, "Login successful")
}

// Logout handles GET /logout: the session is revoked, cookies cleared and
// the client sent back to the login page.
func (ctl *AuthController) Logout(c *gin.Context) {
	if jti, ok := c.Get("sessionID"); ok {
		ttl := time.Duration(0)
		if exp, ok := c.Get("sessionExp"); ok {
			if expUnix, ok := exp.(int64); ok {
				ttl = time.Until(time.Unix(expUnix, 0))
			}
		}
		if err := ctl.sessions.Revoke(c.Request.Context(), jti.(string), ttl); err != nil {
			errLog.Error("could not revoke session: %v", err)
		}
	}

	services.ClearTokenCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// AuthGoogle handles POST /auth/google with a Google ID token
func (ctl *AuthController) AuthGoogle(c *gin.Context) {
	var input dto.GoogleAuthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid token payload")
		return
	}

	payload, err := verifyGoogleIDToken(c.Request.Context(), input.TokenId)
	if err != nil {
		response.Unauthorized(c, "Google token could not be verified")
		return
	}

	googleUser := dto.GoogleUser{
		Name:          claimString(payload.Claims, "name"),
		Email:         claimString(payload.Claims, "email"),
		VerifiedEmail: claimBool(payload.Claims, "email_verified"),
	}

	if !googleUser.VerifiedEmail {
		response.BadRequest(c, "Email has not been verified")
		return
	}

	_, token, err := ctl.auth.LoginGoogle(googleUser)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	services.SetTokenCookie(c, token)
	response.Message(c, "Login successful")
}

func verifyGoogleIDToken(ctx context.Context, tokenId string) (*idtoken.Payload, error) {
	clientID := config.GetEnv("GOOGLE_CLIENT_ID")
	return idtoken.Validate(ctx, tokenId, clientID)
}

func claimString(claims map[string]interface{}, key string) string {
	v, _ := claims[key].(string)
	return v
}

func claimBool(claims map[string]interface{}, key string) bool {
	v, _ := claims[key].(bool)
	return v
}
