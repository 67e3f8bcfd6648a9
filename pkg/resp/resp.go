package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "error": msg})
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, msg)
}

func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg)
}

func Conflict(c *gin.Context, msg string) {
	Error(c, http.StatusConflict, msg)
}

// Invalid reports per-field problems next to the summary message.
func Invalid(c *gin.Context, msg string, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": msg, "fields": fields})
}

func BadGateway(c *gin.Context, msg string) {
	Error(c, http.StatusBadGateway, msg)
}

// ServerError hides err from the client; callers log it.
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal error")
}
