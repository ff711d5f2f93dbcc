package handler

import (
	"context"
	"net/http"
	"time"

	"stockbook/internal/storage"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness plus a storage round-trip probe.
func Health(gw storage.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		storageStatus := "ok"
		if _, err := gw.Get(ctx, storage.KeySettings); err != nil && err != storage.ErrKeyNotFound {
			status = "degraded"
			storageStatus = err.Error()
		}

		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "storage": storageStatus})
	}
}
