package handlers

import (
	"net/http"

	"sonakshi-pos/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetSystemStatus tells the client which till it is talking to. The
// terminal id also ends up on every sale record.
func GetSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "online",
		"terminal_id": utils.TerminalID(),
	})
}
