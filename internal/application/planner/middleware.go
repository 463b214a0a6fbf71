package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
)

// LoggerMiddleware places logger in the request context unless the caller
// already supplied one, and logs failed requests at debug level.
func LoggerMiddleware(logger common.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if !common.HasLogger(ctx) {
			ctx = common.WithLogger(ctx, logger)
		}
		start := time.Now()
		resp, err := next(ctx, request)
		if err != nil {
			common.LoggerFromContext(ctx).Log("DEBUG", "Request failed", map[string]interface{}{
				"request":  strings.TrimPrefix(fmt.Sprintf("%T", request), "*"),
				"duration": time.Since(start).String(),
				"error":    err.Error(),
			})
		}
		return resp, err
	}
}
