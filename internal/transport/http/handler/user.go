package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/domain"
	"go-blog-api/internal/transport/http/middleware"
	"go-blog-api/internal/transport/http/response"
	"go-blog-api/pkg/utils"
)

type UserHandler struct {
	users domain.UserRepository
}

func NewUserHandler(users domain.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": u})
}

type profileIn struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfile mutates name, email and password. A password change is
// gated on the current password; the gate's user record has no hash, so
// the full record is re-read here.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	cur := middleware.CurrentUser(c)
	if cur == nil {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}

	var in profileIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.users.FindByID(cur.ID)
	if err != nil {
		h.internal(c, err)
		return
	}
	if u == nil {
		response.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := strings.TrimSpace(in.Email); email != "" && email != u.Email {
		taken, err := h.users.EmailTaken(email, u.ID)
		if err != nil {
			h.internal(c, err)
			return
		}
		if taken {
			response.Fail(c, http.StatusBadRequest, "Email is already taken")
			return
		}
		u.Email = email
	}

	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			response.Fail(c, http.StatusBadRequest, "Current password is required to change password")
			return
		}
		if !utils.CheckPassword(in.CurrentPassword, u.PasswordHash) {
			response.Fail(c, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		if len(in.NewPassword) < 6 {
			response.Fail(c, http.StatusBadRequest, "New password must be at least 6 characters")
			return
		}
		u.PasswordHash = utils.HashPassword(in.NewPassword)
	}

	if err := h.users.Update(u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			response.Fail(c, http.StatusBadRequest, "Email is already taken")
			return
		}
		h.internal(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "Profile updated successfully", "user": u})
}

func (h *UserHandler) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.MsgServerError)
}
