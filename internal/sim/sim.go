// Package sim is the request simulator: artificial latency on every request
// and randomized failure injection on writes, applied as HTTP middleware
// before any handler runs. A rejected request never reaches its handler, so
// no collection is mutated.
package sim

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AvinashMishraaa/Talentflow/internal/config"
)

// Config tunes the simulator. Zero latency bounds disable sleeping; a zero
// rate disables injection, which is how unit tests run.
type Config struct {
	LatencyMin       time.Duration
	LatencyMax       time.Duration
	ErrorRate        float64
	ReorderErrorRate float64
	WriteMethods     []string

	// Rand, when set, replaces the global source so tests are deterministic.
	Rand *rand.Rand
}

// FromAppConfig maps the yaml simulator section onto a sim Config.
func FromAppConfig(cfg *config.Config) Config {
	return Config{
		LatencyMin:       time.Duration(cfg.Simulator.LatencyMinMs) * time.Millisecond,
		LatencyMax:       time.Duration(cfg.Simulator.LatencyMaxMs) * time.Millisecond,
		ErrorRate:        cfg.Simulator.ErrorRate,
		ReorderErrorRate: cfg.Simulator.ReorderErrorRate,
		WriteMethods:     cfg.Simulator.WriteMethods,
	}
}

// Disabled is the no-latency, no-failure configuration.
func Disabled() Config {
	return Config{}
}

type source struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *source) float64() float64 {
	if s.r == nil {
		return rand.Float64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *source) int63n(n int64) int64 {
	if s.r == nil {
		return rand.Int63n(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int63n(n)
}

// Middleware returns the simulator as chi-style middleware. Health, metrics,
// and docs endpoints are exempt.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	src := &source{r: cfg.Rand}
	writeMethods := cfg.WriteMethods
	if writeMethods == nil {
		writeMethods = []string{http.MethodPost, http.MethodPatch, http.MethodPut}
	}
	log := zap.S().Named("sim")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()

			if d := latency(cfg, src); d > 0 {
				time.Sleep(d)
			}

			if isWrite(r.Method, writeMethods) {
				rate := cfg.ErrorRate
				route := "write"
				if isReorder(r) {
					rate = cfg.ReorderErrorRate
					route = "reorder"
				}
				if rate > 0 && src.float64() < rate {
					injectedFailuresTotal.WithLabelValues(route).Inc()
					requestsTotal.WithLabelValues(r.Method, "500").Inc()
					requestLatency.Observe(time.Since(start).Seconds())
					log.Infow("injected failure", "method", r.Method, "path", r.URL.Path)
					respondInjectedFailure(w)
					return
				}
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			requestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
			requestLatency.Observe(elapsed.Seconds())
			log.Debugw("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "latency", elapsed)
		})
	}
}

func latency(cfg Config, src *source) time.Duration {
	if cfg.LatencyMax <= 0 {
		return 0
	}
	if cfg.LatencyMax <= cfg.LatencyMin {
		return cfg.LatencyMin
	}
	return cfg.LatencyMin + time.Duration(src.int63n(int64(cfg.LatencyMax-cfg.LatencyMin)))
}

func isWrite(method string, writeMethods []string) bool {
	for _, m := range writeMethods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// The reorder endpoint uses its own, higher failure probability.
func isReorder(r *http.Request) bool {
	return r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/reorder")
}

func exempt(path string) bool {
	if path == "/metrics" || path == "/docs" {
		return true
	}
	return strings.HasSuffix(path, "/health") || strings.HasSuffix(path, "/openapi.json")
}

func respondInjectedFailure(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    "injected_failure",
			"message": "simulated write failure",
		},
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
