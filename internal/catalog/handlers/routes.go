package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gartstein/catalog/internal/catalog/monitoring"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// HealthCheck reports whether a dependency of the service is usable.
type HealthCheck func(ctx context.Context) error

// RouterOptions configures the HTTP surface around the catalog routes.
type RouterOptions struct {
	// PublicDir holds the front-end assets served for unmatched GET requests.
	PublicDir    string
	CORSOrigins  []string
	HealthChecks map[string]HealthCheck
}

type route struct {
	pattern string
	handle  runtime.HandlerFunc
}

// routes lists the catalog endpoints. The mux tries the most recently
// registered pattern first, so a parameterized pattern must come before the
// literal patterns it would otherwise shadow.
func (h *CatalogHandler) routes() []route {
	return []route{
		{"/companies", h.listCompanies},
		{"/companies/type/{type}", h.companiesByType},
		{"/companies/city/{city}", h.companiesByCity},
		{"/companies/county/{county}", h.companiesByCounty},
		{"/companies/{slug}", h.companyBySlug},
		{"/companies/megamenu", h.megamenu},

		{"/moments", h.listMoments},
		{"/moments/business/{businessId}", h.momentsByBusiness},
		{"/moments/{id}", h.momentByID},
		{"/moments/expiring-soon", h.momentsExpiringSoon},

		{"/drops", h.listDrops},
		{"/drops/business/{businessId}", h.dropsByBusiness},
		{"/drops/{id}", h.dropByID},
		{"/drops/ending-soon", h.dropsEndingSoon},
	}
}

// NewHTTPHandler assembles the HTTP surface: catalog routes, health and
// metrics endpoints, the static front-end fallback, CORS and request logging.
func NewHTTPHandler(h *CatalogHandler, opts RouterOptions, logger *zap.Logger) (http.Handler, error) {
	static := StaticFiles(opts.PublicDir)

	mux := runtime.NewServeMux(
		runtime.WithRoutingErrorHandler(func(_ context.Context, _ *runtime.ServeMux, _ runtime.Marshaler, w http.ResponseWriter, r *http.Request, status int) {
			if status == http.StatusNotFound && r.Method == http.MethodGet {
				static.ServeHTTP(w, r)
				return
			}
			if status == http.StatusMethodNotAllowed {
				writeError(w, status, codeMethodNotAllowed, "Method not allowed")
				return
			}
			if status == http.StatusNotFound {
				writeError(w, status, codeNotFound, "Not found")
				return
			}
			writeError(w, status, codeBadRequest, http.StatusText(status))
		}),
	)

	for _, rt := range h.routes() {
		if err := mux.HandlePath(http.MethodGet, rt.pattern, tracked(rt.pattern, rt.handle)); err != nil {
			return nil, fmt.Errorf("register route %s: %w", rt.pattern, err)
		}
	}

	if err := mux.HandlePath(http.MethodGet, "/healthz", healthz(opts.HealthChecks)); err != nil {
		return nil, fmt.Errorf("register route /healthz: %w", err)
	}

	metrics := monitoring.Handler()
	if err := mux.HandlePath(http.MethodGet, "/metrics", func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		metrics.ServeHTTP(w, r)
	}); err != nil {
		return nil, fmt.Errorf("register route /metrics: %w", err)
	}

	return RequestLogger(CORS(opts.CORSOrigins, mux), logger), nil
}

func tracked(pattern string, next runtime.HandlerFunc) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r, params)
		monitoring.TrackRequest(pattern, r.Method, rec.status, time.Since(start))
	}
}

func healthz(checks map[string]HealthCheck) runtime.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				writeError(w, http.StatusServiceUnavailable, codeUnhealthy, fmt.Sprintf("%s: %v", name, err))
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
