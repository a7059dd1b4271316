package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-blog-api/internal/core/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/transport/http/response"
)

// AdminHandler serves the admin listener. The whole route group sits
// behind Authenticate + RequireRole("admin"), so no per-route role checks
// happen here.
type AdminHandler struct {
	users domain.UserRepository
	auth  *AuthHandler
}

func NewAdminHandler(users domain.UserRepository, jwter *auth.JWTer) *AdminHandler {
	return &AdminHandler{users: users, auth: NewAuthHandler(users, jwter)}
}

type userRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	withDeleted := c.Query("with_deleted") == "true"

	users, total, err := h.users.List(offset, limit, c.Query("q"), withDeleted)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.MsgServerError)
		return
	}

	items := make([]userRow, 0, len(users))
	for _, u := range users {
		items = append(items, userRow{
			ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt,
		})
	}
	response.OK(c, http.StatusOK, gin.H{"total": total, "items": items})
}

// CreateAdmin provisions an admin account; same validation as public
// registration, role pinned to admin.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	h.auth.register(c, domain.RoleAdmin, "Admin user created successfully")
}

// BanUser soft-deletes the account. Live tokens for it then fail the
// gate's lookup step on their next request.
func (h *AdminHandler) BanUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, "Missing user id")
		return
	}
	if err := h.users.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.MsgServerError)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": id})
}
