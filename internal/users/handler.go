package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paggo-backend/internal/shared/server/middleware"
	"paggo-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the users service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the unauthenticated routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
}

// RegisterProtectedRoutes attaches routes that require a bearer token.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name, email and password are required", nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "conflict", "email already in use", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register user", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}

	respond.OK(c, gin.H{
		"message": "Login bem-sucedido",
		"token":   token,
	})
}

func (h *Handler) me(c *gin.Context) {
	respond.OK(c, gin.H{
		"userId": middleware.UserIDFromContext(c),
		"email":  middleware.UserEmailFromContext(c),
	})
}
