package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AvinashMishraaa/Talentflow/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	durable, err := NewSQLiteTier(conn)
	if err != nil {
		t.Fatalf("sqlite tier: %v", err)
	}
	fast := FileTier{Dir: filepath.Join(dir, "kv")}
	return New(fast, durable)
}

func TestSaveWritesBothTiers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, "tf_jobs", []byte(`[1,2,3]`))

	if raw, ok, err := s.Fast.Load(ctx, "tf_jobs"); err != nil || !ok || string(raw) != `[1,2,3]` {
		t.Fatalf("fast tier: ok=%v err=%v raw=%s", ok, err, raw)
	}
	if raw, ok, err := s.Durable.Load(ctx, "tf_jobs"); err != nil || !ok || string(raw) != `[1,2,3]` {
		t.Fatalf("durable tier: ok=%v err=%v raw=%s", ok, err, raw)
	}
}

func TestLoadBackfillsFastTier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Write only to the durable tier, as if the fast tier were wiped.
	if err := s.Durable.Save(ctx, "tf_stats", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("durable save: %v", err)
	}
	raw, ok := s.Load(ctx, "tf_stats")
	if !ok || string(raw) != `{"a":1}` {
		t.Fatalf("load: ok=%v raw=%s", ok, raw)
	}
	if raw, ok, err := s.Fast.Load(ctx, "tf_stats"); err != nil || !ok || string(raw) != `{"a":1}` {
		t.Fatalf("fast tier not backfilled: ok=%v err=%v raw=%s", ok, err, raw)
	}
}

func TestLoadSyncReadsOnlyFastTier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Durable.Save(ctx, "tf_only_durable", []byte(`1`)); err != nil {
		t.Fatalf("durable save: %v", err)
	}
	if _, ok := s.LoadSync("tf_only_durable"); ok {
		t.Fatal("LoadSync should not consult the durable tier")
	}
	if err := s.Fast.Save(ctx, "tf_fast", []byte(`2`)); err != nil {
		t.Fatalf("fast save: %v", err)
	}
	raw, ok := s.LoadSync("tf_fast")
	if !ok || string(raw) != `2` {
		t.Fatalf("LoadSync: ok=%v raw=%s", ok, raw)
	}
}

func TestLoadJSONFallsBackOnMalformedValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, "tf_bad", []byte(`{not json`))
	got := LoadJSON(ctx, s, "tf_bad", 42)
	if got != 42 {
		t.Fatalf("LoadJSON fallback = %d, want 42", got)
	}
	if got := LoadJSON(ctx, s, "tf_missing", "fallback"); got != "fallback" {
		t.Fatalf("LoadJSON missing key = %q, want fallback", got)
	}
}

func TestSaveJSONRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	SaveJSON(ctx, s, "tf_payload", payload{Name: "x", Count: 3})
	got := LoadJSON(ctx, s, "tf_payload", payload{})
	if got.Name != "x" || got.Count != 3 {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, "tf_v", []byte(`1`))
	s.Save(ctx, "tf_v", []byte(`2`))
	raw, ok := s.Load(ctx, "tf_v")
	if !ok || string(raw) != `2` {
		t.Fatalf("load after overwrite: ok=%v raw=%s", ok, raw)
	}
}

func TestFileTierCreatesDirOnDemand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "kv")
	ft := FileTier{Dir: dir}
	if err := ft.Save(context.Background(), "k", []byte(`true`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "k.json")); err != nil {
		t.Fatalf("expected file: %v", err)
	}
}
