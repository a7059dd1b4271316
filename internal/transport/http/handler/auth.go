package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/core/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/transport/http/response"
	"go-blog-api/pkg/utils"
)

type AuthHandler struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthHandler(users domain.UserRepository, jwter *auth.JWTer) *AuthHandler {
	return &AuthHandler{users: users, jwter: jwter}
}

type credentialsIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authOut struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// Register creates a user account and signs them in. Email uniqueness is
// ultimately the unique index's job: the pre-check gives the common case a
// clean message, and a lost insert race maps to the same 400.
func (h *AuthHandler) Register(c *gin.Context) {
	h.register(c, domain.RoleUser, "User registered successfully")
}

func (h *AuthHandler) register(c *gin.Context, role, okMsg string) {
	var in credentialsIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		response.Fail(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if len(in.Password) < 6 {
		response.Fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	taken, err := h.users.EmailTaken(email, "")
	if err != nil {
		h.internal(c, err)
		return
	}
	if taken {
		response.Fail(c, http.StatusBadRequest, "User with this email already exists")
		return
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         role,
	}
	if err := h.users.Create(u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			response.Fail(c, http.StatusBadRequest, "User with this email already exists")
			return
		}
		h.internal(c, err)
		return
	}

	tok, err := h.jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		h.internal(c, err)
		return
	}
	response.OK(c, http.StatusCreated, authOut{Message: okMsg, Token: tok, User: u})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in credentialsIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		response.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.users.FindByEmail(email)
	if err != nil {
		h.internal(c, err)
		return
	}
	if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
		response.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tok, err := h.jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		h.internal(c, err)
		return
	}
	response.OK(c, http.StatusOK, authOut{Message: "Login successful", Token: tok, User: u})
}

func (h *AuthHandler) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.MsgServerError)
}
