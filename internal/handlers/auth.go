package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/rishanreddy/habitmind/internal/constants"
	"github.com/rishanreddy/habitmind/internal/dto"
	apierrors "github.com/rishanreddy/habitmind/internal/errors"
	"github.com/rishanreddy/habitmind/internal/logger"
	"github.com/rishanreddy/habitmind/internal/middleware"
	"github.com/rishanreddy/habitmind/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	habitService *services.HabitService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, habitService *services.HabitService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		habitService: habitService,
	}
}

// Signup registers a new user and signs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name                 string `json:"name" binding:"required,max=100"`
		Email                string `json:"email" binding:"required"`
		Password             string `json:"password" binding:"required"`
		PasswordConfirmation string `json:"password_confirmation" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := saveSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user, ""))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := saveSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, h.authService.AvatarURL(c.Request.Context(), user)))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// IssueToken returns a bearer token for the authenticated user.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	token, expiresAt, err := h.authService.IssueToken(userID)
	if err != nil {
		logger.Error("Failed to issue token", "user", userID, "err", err)
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	})
}

// GetCurrentUser returns the authenticated user with their habit stats.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	ctx := c.Request.Context()
	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	stats, err := h.habitService.Stats(ctx)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		User:  dto.ToUserDTO(*user, h.authService.AvatarURL(ctx, user)),
		Stats: dto.ToStatsDTO(*stats),
	})
}

// UploadAvatar stores a new profile image sent as the multipart field "image".
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	// Leave room for the multipart envelope around the image itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxAvatarBytes+(1<<20))

	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondAuthError(c, services.ErrImageTooLarge)
			return
		}
		apierrors.BadRequest(c, "An image file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	user, err := h.authService.SetAvatar(ctx, userID, services.AvatarUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, h.authService.AvatarURL(ctx, user)))
}

func saveSession(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrInvalidImage):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrImageTooLarge):
		apierrors.PayloadTooLarge(c, fmt.Sprintf("Image must be at most %d MB", constants.MaxAvatarBytes>>20))
	case errors.Is(err, services.ErrStorageNotConfigured):
		apierrors.ServiceUnavailable(c, "Image uploads are not available")
	default:
		logger.Error("Auth request failed", "path", c.FullPath(), "err", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
