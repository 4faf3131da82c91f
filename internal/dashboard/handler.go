package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	apperrors "github.com/lueurxax/launch-dashboard/internal/core/errors"
	"github.com/lueurxax/launch-dashboard/internal/dataset"
	"github.com/lueurxax/launch-dashboard/internal/platform/config"
)

// Route and header constants.
const (
	routeNotFound     = "not_found"
	headerRequestID   = "X-Request-ID"
	contentTypeHeader = "Content-Type"
	contentTypeHTML   = "text/html; charset=utf-8"
	contentTypeJSON   = "application/json; charset=utf-8"
	chartNameParam    = "name"
	rateLimitWindow   = time.Minute
	slowRequestCutoff = 500 * time.Millisecond
)

// Log field names.
const (
	logFieldRoute     = "route"
	logFieldStatus    = "status"
	logFieldRequestID = "request_id"
	logFieldChart     = "chart"
)

// Handler serves the dashboard page, its chart bindings and rendered charts.
type Handler struct {
	ds        *dataset.Dataset
	renderer  *Renderer
	chartOpts ChartOptions
	format    string
	rateCfg   config.RateLimitConfig
	logger    *zerolog.Logger
	router    chi.Router

	// IP-based rate limiting
	limiters   map[string]*rate.Limiter
	limitersMu sync.Mutex
}

// NewHandler creates the dashboard handler over a loaded dataset.
func NewHandler(cfg *config.Config, ds *dataset.Dataset, logger *zerolog.Logger) (*Handler, error) {
	renderer, err := NewRenderer(cfg.IsLocal())
	if err != nil {
		return nil, err
	}

	chartCfg := cfg.ChartCfg()

	h := &Handler{
		ds:        ds,
		renderer:  renderer,
		chartOpts: ChartOptions{Width: chartCfg.Width, Height: chartCfg.Height},
		format:    chartCfg.Format,
		rateCfg:   cfg.RateLimitCfg(),
		logger:    logger,
		limiters:  make(map[string]*rate.Limiter),
	}

	if h.format == "" {
		h.format = FormatSVG
	}

	h.router = h.routes()

	return h, nil
}

func (h *Handler) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(h.requestID)
	r.Use(h.instrument)
	r.Use(middleware.Recoverer)
	r.Use(h.rateLimit)

	r.Get("/", h.handleIndex)
	r.Get("/api/layout", h.handleLayout)
	r.Get("/api/pie", h.handlePieData)
	r.Get("/api/scatter", h.handleScatterData)
	r.Get("/charts/{"+chartNameParam+"}", h.handleChart)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, http.StatusNotFound, "Not Found", "Unknown dashboard endpoint.")
	})

	return r
}

// ServeHTTP routes requests to dashboard endpoints.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := &PageData{
		Layout:      BuildLayout(h.ds),
		RecordCount: h.ds.Len(),
		ImageFormat: h.format,
	}

	var buf bytes.Buffer

	if err := h.renderer.RenderPage(&buf, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render dashboard page")
		renderErrorsTotal.WithLabelValues("page").Inc()
		h.writeError(w, r, http.StatusInternalServerError, "Error", "Failed to render dashboard.")

		return
	}

	w.Header().Set(contentTypeHeader, contentTypeHTML)

	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("write page failed")
	}
}

func (h *Handler) handleLayout(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, BuildLayout(h.ds))
}

func (h *Handler) handlePieData(w http.ResponseWriter, r *http.Request) {
	site, err := parseSite(r)
	if err != nil {
		h.rejectBadRequest(w, r, err)
		return
	}

	fig := SiteSuccesses(h.ds, site)
	resultSizeGauge.WithLabelValues(ChartPie).Set(float64(len(fig.Slices)))

	h.writeJSON(w, http.StatusOK, fig)
}

func (h *Handler) handleScatterData(w http.ResponseWriter, r *http.Request) {
	site, rng, err := h.scatterParams(r)
	if err != nil {
		h.rejectBadRequest(w, r, err)
		return
	}

	fig := PayloadScatter(h.ds, site, rng)
	resultSizeGauge.WithLabelValues(ChartScatter).Set(float64(fig.Len()))

	h.writeJSON(w, http.StatusOK, fig)
}

func (h *Handler) scatterParams(r *http.Request) (string, PayloadRange, error) {
	site, err := parseSite(r)
	if err != nil {
		return "", PayloadRange{}, err
	}

	rng, err := parseRange(r, h.ds)
	if err != nil {
		return "", PayloadRange{}, err
	}

	return site, rng, nil
}

// handleChart serves /charts/{chart}.{format}.
func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, chartNameParam)
	ext := path.Ext(name)
	chartName := strings.TrimSuffix(name, ext)
	format := strings.TrimPrefix(ext, ".")

	if chartName != ChartPie && chartName != ChartScatter {
		h.writeError(w, r, http.StatusNotFound, "Not Found", "Unknown chart.")
		return
	}

	contentType, err := ContentType(format)
	if err != nil {
		h.rejectBadRequest(w, r, err)
		return
	}

	var (
		buf       bytes.Buffer
		renderErr error
	)

	switch chartName {
	case ChartPie:
		site, err := parseSite(r)
		if err != nil {
			h.rejectBadRequest(w, r, err)
			return
		}

		renderErr = RenderPie(&buf, SiteSuccesses(h.ds, site), format, h.chartOpts)
	case ChartScatter:
		site, rng, err := h.scatterParams(r)
		if err != nil {
			h.rejectBadRequest(w, r, err)
			return
		}

		renderErr = RenderScatter(&buf, PayloadScatter(h.ds, site, rng), format, h.chartOpts)
	}

	if renderErr != nil {
		zerolog.Ctx(r.Context()).Error().Err(renderErr).Str(logFieldChart, chartName).Msg("Failed to render chart")
		renderErrorsTotal.WithLabelValues(chartName).Inc()
		h.writeError(w, r, http.StatusInternalServerError, "Error", "Failed to render chart.")

		return
	}

	w.Header().Set(contentTypeHeader, contentType)
	w.Header().Set("Cache-Control", "no-cache")

	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("write chart failed")
	}
}

func (h *Handler) rejectBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnknownSite):
		deniedTotal.WithLabelValues(ReasonUnknownSite).Inc()
	case errors.Is(err, apperrors.ErrInvalidRange):
		deniedTotal.WithLabelValues(ReasonInvalidRange).Inc()
	case errors.Is(err, apperrors.ErrUnsupportedFormat):
		deniedTotal.WithLabelValues(ReasonBadFormat).Inc()
	}

	zerolog.Ctx(r.Context()).Warn().Err(err).Str("query", r.URL.RawQuery).Msg("dashboard validation failed")

	h.writeError(w, r, http.StatusBadRequest, "Bad Request", err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("encode json failed")

		status = http.StatusInternalServerError

		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}

	w.Header().Set(contentTypeHeader, contentTypeJSON)
	w.WriteHeader(status)

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Debug().Err(err).Msg("write json failed")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	if wantsHTML(r) {
		w.Header().Set(contentTypeHeader, contentTypeHTML)
		w.WriteHeader(status)

		if err := h.renderer.RenderError(w, &ErrorData{Code: status, Title: title, Message: message}); err != nil {
			h.logger.Error().Err(err).Msg("Failed to render error page")
		}

		return
	}

	h.writeJSON(w, status, map[string]string{"error": message})
}

func wantsHTML(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/charts/") {
		return false
	}

	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// requestID tags every request with an id and a request-scoped logger.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(headerRequestID, id)

		logger := h.logger.With().Str(logFieldRequestID, id).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

// instrument records route metrics and logs slow or failed requests.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := routeNotFound
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		elapsed := time.Since(start)
		latencyHistogram.WithLabelValues(route).Observe(elapsed.Seconds())
		requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()

		event := zerolog.Ctx(r.Context()).Debug()
		if status >= http.StatusInternalServerError {
			event = zerolog.Ctx(r.Context()).Error()
		} else if elapsed >= slowRequestCutoff {
			event = zerolog.Ctx(r.Context()).Warn()
		}

		event.
			Str(logFieldRoute, route).
			Int(logFieldStatus, status).
			Dur("duration", elapsed).
			Msg("dashboard request")
	})
}

func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.rateCfg.Enabled() && !h.allowRequest(getClientIP(r)) {
			deniedTotal.WithLabelValues(ReasonRateLimited).Inc()
			h.writeError(w, r, http.StatusTooManyRequests, "Too Many Requests", "Please wait before trying again.")

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) allowRequest(ip string) bool {
	h.limitersMu.Lock()

	limiter, ok := h.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(rateLimitWindow/time.Duration(h.rateCfg.RequestsPerMinute)), h.rateCfg.Burst)
		h.limiters[ip] = limiter
	}

	h.limitersMu.Unlock()

	return limiter.Allow()
}

func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (common with reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr without the per-connection port
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
