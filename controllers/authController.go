package controllers

import (
	"net/http"
	"strings"

	"cityreport-be/errs"
	"cityreport-be/identity"
	"cityreport-be/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	provider identity.Provider
}

func NewAuthController(provider identity.Provider) *AuthController {
	return &AuthController{provider: provider}
}

// Login exchanges email+password for a session token pair. Only the
// admin account may sign in to this API; a valid non-admin credential
// is authenticated but forbidden.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errs.Validationf("email and password are required"))
		return
	}

	session, err := ac.provider.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if session.User.Role != models.RoleAdmin {
		respondError(c, errs.Forbiddenf("admin account required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"user":         session.User,
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
	})
}

// Verify resolves the bearer token from the Authorization header and
// returns the identity it belongs to.
func (ac *AuthController) Verify(c *gin.Context) {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		respondError(c, errs.Authf("no authorization token provided"))
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		respondError(c, errs.Authf("no authorization token provided"))
		return
	}

	user, err := ac.provider.ResolveToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout acknowledges a sign-out. Idempotent: logging out without a
// token still succeeds.
func (ac *AuthController) Logout(c *gin.Context) {
	authHeader := c.Request.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	_ = ac.provider.SignOut(c.Request.Context(), token)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
