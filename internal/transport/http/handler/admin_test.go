package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-api/internal/domain"
	mdw "go-blog-api/internal/transport/http/middleware"
)

func adminEngine(t *testing.T, users *fakeUsers) *gin.Engine {
	t.Helper()
	r := gin.New()
	j := testJWTer(t)
	h := NewAdminHandler(users, j)
	g := r.Group("/admin/v1")
	g.Use(mdw.Authenticate(j, users), mdw.RequireRole(domain.RoleAdmin))
	g.GET("/users", h.ListUsers)
	g.POST("/users", h.CreateAdmin)
	g.POST("/users/:id/ban", h.BanUser)
	return r
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	users, _, other, admin := seedUsers()
	r := adminEngine(t, users)
	j := testJWTer(t)

	w := request(r, http.MethodGet, "/admin/v1/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodGet, "/admin/v1/users", issueFor(t, j, other), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")

	w = request(r, http.MethodGet, "/admin/v1/users", issueFor(t, j, admin), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminListUsers(t *testing.T) {
	users, _, _, admin := seedUsers()
	r := adminEngine(t, users)

	w := request(r, http.MethodGet, "/admin/v1/users?limit=2", issueFor(t, testJWTer(t), admin), "")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Total int64     `json:"total"`
		Items []userRow `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, int64(3), out.Total)
	assert.Len(t, out.Items, 2)
}

func TestAdminBanUser_InvalidatesLiveTokens(t *testing.T) {
	users, owner, _, admin := seedUsers()
	r := adminEngine(t, users)
	j := testJWTer(t)

	ownerTok := issueFor(t, j, owner)

	w := request(r, http.MethodPost, "/admin/v1/users/"+owner.ID+"/ban", issueFor(t, j, admin), "")
	require.Equal(t, http.StatusOK, w.Code)

	// banned user's still-valid token now fails the gate's lookup step
	posts := postEngine(j, users, newFakePosts())
	w = request(posts, http.MethodPost, "/posts", ownerTok, `{"title":"t","content":"c"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPost, "/admin/v1/users/nope/ban", issueFor(t, j, admin), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminCreateAdmin(t *testing.T) {
	users, _, _, admin := seedUsers()
	r := adminEngine(t, users)

	w := request(r, http.MethodPost, "/admin/v1/users", issueFor(t, testJWTer(t), admin),
		`{"name":"Root","email":"root@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var out struct {
		User domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, domain.RoleAdmin, out.User.Role)
}
