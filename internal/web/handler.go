package web

import (
	"net/http"

	"github.com/KNICEX/price-alert-agent/internal/schedule"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the manual run trigger.
func RegisterRoutes(engine *gin.Engine, task schedule.Task) {
	engine.POST("/run", runHandler(task))
}

func runHandler(task schedule.Task) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := task.Run(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
