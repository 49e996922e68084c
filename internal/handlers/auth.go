package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/taskgraph-api/internal/constants"
	"github.com/yukikurage/taskgraph-api/internal/dto"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/middleware"
	"github.com/yukikurage/taskgraph-api/internal/services"
)

// AuthHandler serves sessions and user registration.
type AuthHandler struct {
	userService *services.UserService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		log:         log,
	}
}

type usernameRequest struct {
	Username string `json:"username"`
}

// GetSession returns the signed-in user.
func (h *AuthHandler) GetSession(c *gin.Context) {
	session := sessions.Default(c)
	username, _ := session.Get(constants.ContextKeyUsername).(string)
	if username == "" {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.userService.GetUserByUsername(username)
	if err != nil {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Username: user.Username,
		User:     dto.ToUserDTO(*user),
	})
}

// Login signs an existing user in and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req usernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "invalid-request")
		return
	}

	user, err := h.userService.Login(req.Username)
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUsername, user.Username)
	if err := session.Save(); err != nil {
		h.log.Error().Err(err).Msg("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Username: user.Username,
		User:     dto.ToUserDTO(*user),
	})
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

	c.JSON(http.StatusOK, gin.H{"message": "logged-out"})
}

// Register creates a user. It does not sign the user in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "invalid-request")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": dto.ToUserDTO(*user)})
}

// ListUsers returns every registered user.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	if _, ok := middleware.GetUsername(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.RespondDomainError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}
