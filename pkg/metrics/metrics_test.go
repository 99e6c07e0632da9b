package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCountsMutations(t *testing.T) {
	r := NewRecorder()
	r.Mutation("move", time.Now(), nil)
	r.Mutation("move", time.Now(), nil)
	r.Mutation("create", time.Now(), errors.New("boom"))

	if got := testutil.ToFloat64(r.Mutations.WithLabelValues("move", "ok")); got != 2 {
		t.Fatalf("expected 2 moves, got %v", got)
	}
	if got := testutil.ToFloat64(r.Mutations.WithLabelValues("create", "error")); got != 1 {
		t.Fatalf("expected 1 failed create, got %v", got)
	}
}

func TestRecorderViewBuilt(t *testing.T) {
	r := NewRecorder()
	r.ViewBuilt("month", 3)
	r.ViewBuilt("month", 1)
	if got := testutil.ToFloat64(r.ViewBuilds.WithLabelValues("month")); got != 2 {
		t.Fatalf("expected 2 builds, got %v", got)
	}
	if got := testutil.ToFloat64(r.Conflicts); got != 1 {
		t.Fatalf("expected latest conflict count 1, got %v", got)
	}
}

func TestRecorderHandler(t *testing.T) {
	r := NewRecorder()
	r.StoreSize(7)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Result().Body)
	if !strings.Contains(string(body), "contentcal_entries 7") {
		t.Fatalf("expected entries gauge in output, got:\n%s", body)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.Mutation("move", time.Now(), nil)
	r.ViewBuilt("week", 1)
	r.StoreSize(1)
	if r.Registry() != nil {
		t.Fatalf("expected nil registry")
	}
}
