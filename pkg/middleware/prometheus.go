package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/traffic-manager-kpi/pkg/log"
	"github.com/vfg2006/traffic-manager-kpi/pkg/metrics"
)

type contextKeyRoute string

const routeKey contextKeyRoute = "route"

const unmatchedRoute = "unmatched"

// routeLabel é preenchido pela rota encontrada, mantendo o rótulo com o padrão da rota e não o path real
type routeLabel struct {
	pattern string
}

// PrometheusMiddleware registra contagem e duração das requisições por rota
func PrometheusMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			label := &routeLabel{pattern: unmatchedRoute}
			r = r.WithContext(context.WithValue(r.Context(), routeKey, label))

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			next.ServeHTTP(lrw, r)

			metrics.Get().RecordHTTPRequest(label.pattern, r.Method, lrw.statusCode, time.Since(startTime))
		})
	}
}

// RouteLabel grava o padrão da rota para o PrometheusMiddleware e para o log da requisição
func RouteLabel(pattern string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if label, ok := r.Context().Value(routeKey).(*routeLabel); ok {
				label.pattern = pattern
			}
			log.AddRequestField(r.Context(), log.FieldRoute, pattern)
			next.ServeHTTP(w, r)
		})
	}
}
