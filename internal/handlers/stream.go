package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
)

// streamSSE relays every value of ch as a "snapshot" server-sent event until
// the channel closes or the client goes away.
func streamSSE[T any](c *gin.Context, ch <-chan T) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case v, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", v)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
