package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pedesim/backend/internal/models"
	"github.com/pedesim/backend/pkg/response"
	"github.com/pedesim/backend/pkg/utils"
)

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nome     string `json:"nome" binding:"required"`
	Perfil   string `json:"perfil"` // optional, defaults to operador
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, logger: logger}
}

// Register handles POST /auth/register. Only an existing admin may create
// panel users, so this route sits behind JWT + RequireRole("admin").
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	perfil := models.RoleOperador
	if req.Perfil != "" {
		switch req.Perfil {
		case "admin":
			perfil = models.RoleAdmin
		case "operador":
			perfil = models.RoleOperador
		default:
			response.BadRequest(c, "invalid perfil")
			return
		}
	}

	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Email, hash, req.Nome, perfil)
	if err != nil {
		h.logger.Error("create user", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}

	response.Created(c, user.ToPublic())
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Perfil))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// List handles GET /admin/usuarios (admin only).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, list)
}
