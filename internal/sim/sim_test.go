package sim

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AvinashMishraaa/Talentflow/internal/config"
)

func serveWith(t *testing.T, cfg Config, method, path string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	handler := Middleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec, reached
}

func TestDisabledPassesEverything(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut} {
		rec, reached := serveWith(t, Disabled(), method, "/jobs")
		if !reached || rec.Code != http.StatusOK {
			t.Fatalf("%s: reached=%v code=%d", method, reached, rec.Code)
		}
	}
}

func TestWriteFailureInjection(t *testing.T) {
	cfg := Config{ErrorRate: 1.0, Rand: rand.New(rand.NewSource(1))}

	rec, reached := serveWith(t, cfg, http.MethodPost, "/jobs")
	if reached {
		t.Fatal("rejected write must not reach the handler")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error.Code != "injected_failure" || body.Error.Message != "simulated write failure" {
		t.Fatalf("envelope: %+v", body.Error)
	}
}

func TestReadsNeverFail(t *testing.T) {
	cfg := Config{ErrorRate: 1.0, ReorderErrorRate: 1.0, Rand: rand.New(rand.NewSource(1))}
	rec, reached := serveWith(t, cfg, http.MethodGet, "/candidates")
	if !reached || rec.Code != http.StatusOK {
		t.Fatalf("GET should always pass: reached=%v code=%d", reached, rec.Code)
	}
}

func TestReorderUsesItsOwnRate(t *testing.T) {
	// General write rate zero, reorder rate certain: only the reorder
	// path fails.
	cfg := Config{ErrorRate: 0, ReorderErrorRate: 1.0, Rand: rand.New(rand.NewSource(1))}

	rec, reached := serveWith(t, cfg, http.MethodPatch, "/jobs/3/reorder")
	if reached || rec.Code != http.StatusInternalServerError {
		t.Fatalf("reorder: reached=%v code=%d", reached, rec.Code)
	}
	rec, reached = serveWith(t, cfg, http.MethodPatch, "/jobs/3")
	if !reached || rec.Code != http.StatusOK {
		t.Fatalf("plain patch: reached=%v code=%d", reached, rec.Code)
	}
}

func TestConfiguredWriteMethodsAreHonored(t *testing.T) {
	cfg := Config{ErrorRate: 1.0, WriteMethods: []string{http.MethodPut}, Rand: rand.New(rand.NewSource(1))}
	if _, reached := serveWith(t, cfg, http.MethodPost, "/jobs"); !reached {
		t.Fatal("POST is not configured as a write method and must pass")
	}
	if _, reached := serveWith(t, cfg, http.MethodPut, "/assessments/job/1"); reached {
		t.Fatal("PUT is configured and must be rejected")
	}
}

func TestExemptPaths(t *testing.T) {
	cfg := Config{ErrorRate: 1.0, LatencyMin: time.Hour, LatencyMax: time.Hour, Rand: rand.New(rand.NewSource(1))}
	for _, path := range []string{"/metrics", "/docs", "/health", "/openapi.json"} {
		rec, reached := serveWith(t, cfg, http.MethodPost, path)
		if !reached || rec.Code != http.StatusOK {
			t.Fatalf("%s should bypass the simulator: reached=%v code=%d", path, reached, rec.Code)
		}
	}
}

func TestLatencyBounds(t *testing.T) {
	src := &source{r: rand.New(rand.NewSource(42))}
	cfg := Config{LatencyMin: 200 * time.Millisecond, LatencyMax: 1200 * time.Millisecond}
	for i := 0; i < 1000; i++ {
		d := latency(cfg, src)
		if d < cfg.LatencyMin || d >= cfg.LatencyMax {
			t.Fatalf("latency %v outside [%v, %v)", d, cfg.LatencyMin, cfg.LatencyMax)
		}
	}
	if d := latency(Disabled(), src); d != 0 {
		t.Fatalf("disabled latency = %v", d)
	}
	fixed := Config{LatencyMin: 50 * time.Millisecond, LatencyMax: 50 * time.Millisecond}
	if d := latency(fixed, src); d != 50*time.Millisecond {
		t.Fatalf("degenerate window = %v", d)
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.Default())
	if cfg.LatencyMin != 200*time.Millisecond || cfg.LatencyMax != 1200*time.Millisecond {
		t.Fatalf("latency: %v/%v", cfg.LatencyMin, cfg.LatencyMax)
	}
	if cfg.ErrorRate != 0.07 || cfg.ReorderErrorRate != 0.10 {
		t.Fatalf("rates: %v/%v", cfg.ErrorRate, cfg.ReorderErrorRate)
	}
	if len(cfg.WriteMethods) != 3 {
		t.Fatalf("write methods: %v", cfg.WriteMethods)
	}
}
