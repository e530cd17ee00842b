package adapthttp

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"bodylog/internal/app"
)

// Options tunes the adapter. Zero values disable rate limiting and the
// static frontend.
type Options struct {
	WebDir    string
	RateLimit float64
	RateBurst int
	Logger    *slog.Logger
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	measurements *app.MeasurementService
	charts       *app.ChartsService
	meals        *app.MealService
	webDir       string
	limiter      *rate.Limiter
	log          *slog.Logger
}

// New creates a Server wired to the given application services.
func New(ms *app.MeasurementService, cs *app.ChartsService, meals *app.MealService, opts Options) *Server {
	s := &Server{
		measurements: ms,
		charts:       cs,
		meals:        meals,
		webDir:       opts.WebDir,
		log:          opts.Logger,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = int(opts.RateLimit)
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	s.handle(api, "/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	s.handle(api, "/metrics/list", s.handleMetricList)

	s.handle(api, "/measurements", s.handleMeasurements)
	s.handle(api, "/measurements/{metric}", s.handleMetricEntries)
	s.handle(api, "/measurements/{metric}/{id}", s.handleEntry)

	s.handle(api, "/charts/{metric}", s.handleChart)
	s.handle(api, "/history/{metric}", s.handleHistory)

	s.handle(api, "/bmi", s.handleBMI)

	s.handle(api, "/meals", s.handleMeals)
	s.handle(api, "/meals/{id}", s.handleMeal)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/metrics", promhttp.Handler())
	if s.webDir != "" {
		if info, err := os.Stat(s.webDir); err == nil && info.IsDir() {
			root.Handle("/", spaFromDisk(s.webDir))
		}
	}

	return withNoCache(root)
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.withMiddleware(h))
}
