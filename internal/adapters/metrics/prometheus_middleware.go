package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// HabitatScoped is implemented by requests and responses that know which kind
// of habitat they act on
type HabitatScoped interface {
	HabitatType() habitat.HabitatType
}

// PrometheusMiddleware times every planner request and labels it with its
// outcome and habitat type. The habitat type comes from the response when
// the request succeeded, otherwise from the request.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordRequest(
			requestName(request),
			Outcome(err),
			habitatTypeOf(response, request),
			time.Since(start).Seconds(),
		)
		return response, err
	}
}

// requestName strips package and pointer from the request type:
// *commands.PlaceModuleCommand becomes PlaceModuleCommand
func requestName(request mediator.Request) string {
	if request == nil {
		return "Unknown"
	}
	name := fmt.Sprintf("%T", request)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "*")
}

func habitatTypeOf(candidates ...any) string {
	for _, c := range candidates {
		if scoped, ok := c.(HabitatScoped); ok {
			if t := scoped.HabitatType(); t != "" {
				return string(t)
			}
		}
	}
	return ""
}
