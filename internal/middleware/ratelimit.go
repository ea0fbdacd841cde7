package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
)

// RateLimit limits requests per client IP. rate uses the limiter format,
// e.g. "20-M" for twenty per minute.
func RateLimit(rate string) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	l := limiter.New(memory.NewStore(), r)
	return limitergin.NewMiddleware(l,
		limitergin.WithLimitReachedHandler(func(c *gin.Context) {
			httperr.Write(c, http.StatusTooManyRequests, "too_many_requests", "too many attempts, try again later")
		}),
		limitergin.WithErrorHandler(func(c *gin.Context, err error) {
			httperr.Respond(c, err)
		}),
	), nil
}
