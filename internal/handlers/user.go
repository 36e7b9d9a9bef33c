package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/dto"
	"github.com/tasklists/tasks-api/internal/middleware"
	"github.com/tasklists/tasks-api/internal/services"
)

// UserHandler exposes sign-up, sign-in, refresh and account deletion.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// SignUp registers a new user and returns a first session.
func (h *UserHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.userService.SignUp(services.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// The reason is hidden on purpose; 400 for every rejected sign-up.
		apperrors.BadRequest(c, "")
		return
	}

	c.JSON(http.StatusOK, session)
}

// SignIn authenticates and returns a session.
func (h *UserHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.userService.SignIn(services.SignInInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		apperrors.Unauthorized(c)
		return
	}

	c.JSON(http.StatusOK, session)
}

// RefreshToken exchanges an expired access token plus refresh token for a new
// session.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.userService.Refresh(services.RefreshInput{
		Token:        req.Token,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefresh) {
			apperrors.Unauthorized(c)
			return
		}
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Delete removes a user account.
func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}

	var req dto.UserDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.userService.Delete(user, services.DeleteUserInput{
		Username: req.Username,
		WithData: req.WithData,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
