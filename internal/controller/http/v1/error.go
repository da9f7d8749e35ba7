package v1

import (
	"github.com/gin-gonic/gin"
)

type response struct {
	Error string `json:"error" example:"message"`
	Hint  string `json:"hint,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func errorResponse(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, response{Error: msg})
}

func hintedErrorResponse(c *gin.Context, code int, msg, hint, kind string) {
	c.AbortWithStatusJSON(code, response{Error: msg, Hint: hint, Kind: kind})
}
