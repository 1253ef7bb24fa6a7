package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery turns a panicking handler into a JSON 500 instead of a dropped
// connection.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		msg := fmt.Sprint(recovered)
		if err, ok := recovered.(error); ok {
			msg = err.Error()
		}

		log.Error().
			Str("request_id", c.GetString("requestID")).
			Str("path", c.Request.URL.Path).
			Str("panic", msg).
			Msg("unhandled error")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": msg,
		})
	})
}
