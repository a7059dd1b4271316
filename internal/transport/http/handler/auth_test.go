package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-api/internal/domain"
	"go-blog-api/pkg/utils"
)

func authEngine(t *testing.T, users *fakeUsers) *gin.Engine {
	t.Helper()
	r := gin.New()
	h := NewAuthHandler(users, testJWTer(t))
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	users := newFakeUsers()
	r := authEngine(t, users)

	w := request(r, http.MethodPost, "/auth/register", "",
		`{"name":"Alice","email":"alice@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var out struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "alice@x.com", out.User.Email)
	assert.Equal(t, domain.RoleUser, out.User.Role)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	claims, err := testJWTer(t).Parse(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UID)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegister_Validation(t *testing.T) {
	r := authEngine(t, newFakeUsers())

	w := request(r, http.MethodPost, "/auth/register", "",
		`{"name":"","email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name, email, and password are required")

	w = request(r, http.MethodPost, "/auth/register", "",
		`{"name":"A","email":"a@x.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 6 characters")
}

func TestRegister_DuplicateEmail_Precheck(t *testing.T) {
	users := newFakeUsers(&domain.User{ID: "u1", Email: "dup@x.com", Name: "first", Role: domain.RoleUser})
	r := authEngine(t, users)

	w := request(r, http.MethodPost, "/auth/register", "",
		`{"name":"second","email":"dup@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User with this email already exists")
}

// Two near-simultaneous registrations can both pass the existence check;
// the storage unique index decides the race, and the loser gets the same
// 400 as the pre-check path.
func TestRegister_DuplicateEmail_LostInsertRace(t *testing.T) {
	users := newFakeUsers()
	users.createErr = domain.ErrDuplicateEmail
	r := authEngine(t, users)

	w := request(r, http.MethodPost, "/auth/register", "",
		`{"name":"racer","email":"dup@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User with this email already exists")
}

func TestLogin(t *testing.T) {
	users := newFakeUsers(&domain.User{
		ID: "u1", Email: "alice@x.com", Name: "Alice",
		PasswordHash: utils.HashPassword("secret1"), Role: domain.RoleUser,
	})
	r := authEngine(t, users)

	w := request(r, http.MethodPost, "/auth/login", "",
		`{"email":"alice@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = request(r, http.MethodPost, "/auth/login", "",
		`{"email":"nobody@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPost, "/auth/login", "",
		`{"email":"alice@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	claims, err := testJWTer(t).Parse(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
}
