package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/core/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/transport/http/response"
)

// CtxUser is the context key holding the resolved *domain.User.
const CtxUser = "currentUser"

// Authenticate extracts the bearer token, verifies it and resolves the
// subject to a live user (password hash never loaded). Every failure —
// missing header, bad signature, expiry, user deleted since issuance —
// answers the same 401 so the cause is not leaked; the cause still lands
// in the access log via the gin error list. One store lookup per request,
// no caching across requests.
func Authenticate(j *auth.JWTer, users domain.UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			_ = c.Error(err)
			response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
			return
		}
		u, err := users.FindForAuth(claims.UID)
		if err != nil {
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.MsgServerError)
			return
		}
		if u == nil {
			response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
			return
		}
		c.Set(CtxUser, u)
		c.Next()
	}
}

// RequireRole runs after Authenticate. Admins pass any role requirement.
// The decision uses the freshly resolved record, not the token's role
// claim, so a demotion takes effect on the next request.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
			return
		}
		if u.Role != role && !u.IsAdmin() {
			response.Fail(c, http.StatusForbidden, response.MsgForbidden)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by Authenticate, or nil on an
// ungated route.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
