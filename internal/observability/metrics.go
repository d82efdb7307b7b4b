package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics for the API surface and report
// generation, and provides helpers to wire them into the router.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Generations         *prometheus.CounterVec
	GenerationDurations *prometheus.HistogramVec

	ProfilesStored   prometheus.Gauge
	BackendAvailable prometheus.Gauge
}

// NewCollector registers the almanac metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "almanac_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "status"})
	requests, err := registerCounterVec(reg, requests, "almanac_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "almanac_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"})
	durations, err = registerHistogramVec(reg, durations, "almanac_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "almanac_report_generations_total",
		Help: "Total number of daily report generations, labeled by engine mode and result.",
	}, []string{"mode", "result"})
	generations, err = registerCounterVec(reg, generations, "almanac_report_generations_total")
	if err != nil {
		return nil, err
	}

	generationDurations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "almanac_report_generation_seconds",
		Help:    "Daily report generation latency in seconds, labeled by engine mode.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"mode"})
	generationDurations, err = registerHistogramVec(reg, generationDurations, "almanac_report_generation_seconds")
	if err != nil {
		return nil, err
	}

	profiles, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "almanac_profiles_stored",
		Help: "Current number of stored profiles.",
	}), "almanac_profiles_stored")
	if err != nil {
		return nil, err
	}
	backend, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "almanac_ephemeris_backend_available",
		Help: "Whether a precise ephemeris backend is attached (1) or the engine runs in fallback mode (0).",
	}), "almanac_ephemeris_backend_available")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:            gatherer,
		HTTPRequests:        requests,
		HTTPDurations:       durations,
		Generations:         generations,
		GenerationDurations: generationDurations,
		ProfilesStored:      profiles,
		BackendAvailable:    backend,
	}, nil
}

// GinMiddleware records request counts and durations for every handled
// route. The route label uses the registered pattern, not the raw path,
// so parameterized routes stay a single series.
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(gc *gin.Context) {
		start := time.Now()
		gc.Next()

		if c == nil {
			return
		}

		route := gc.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := gc.Request.Method
		status := strconv.Itoa(gc.Writer.Status())

		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(route, method, status).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		}
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveGeneration satisfies the report generator's Recorder interface,
// so generation metrics flow without the report package importing
// prometheus.
func (c *Collector) ObserveGeneration(mode string, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	if c.Generations != nil {
		c.Generations.WithLabelValues(mode, result).Inc()
	}
	if c.GenerationDurations != nil {
		c.GenerationDurations.WithLabelValues(mode).Observe(elapsed.Seconds())
	}
}

// SetProfilesStored updates the stored-profile gauge.
func (c *Collector) SetProfilesStored(count int) {
	if c == nil || c.ProfilesStored == nil {
		return
	}
	c.ProfilesStored.Set(float64(count))
}

// SetBackendAvailable records whether the engine has a precise backend.
func (c *Collector) SetBackendAvailable(available bool) {
	if c == nil || c.BackendAvailable == nil {
		return
	}
	if available {
		c.BackendAvailable.Set(1)
		return
	}
	c.BackendAvailable.Set(0)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
