package response

import "github.com/gin-gonic/gin"

// Rejection messages are deliberately generic: a missing, malformed,
// expired or orphaned token all read the same to the client.
const (
	MsgAuthRequired = "Authentication required"
	MsgForbidden    = "Insufficient permissions"
	MsgServerError  = "Internal server error"
)

type ErrorBody struct {
	Error string `json:"error"`
}

// Fail writes {"error": msg} with the given status and stops the chain.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg})
}

// OK writes data as-is. Handlers own the payload shape.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
