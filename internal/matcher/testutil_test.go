package matcher

import (
	"database/sql"
	_ "embed"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vmunix/matcharr/internal/library"
	_ "modernc.org/sqlite"
)

//go:embed testdata/schema.sql
var testSchema string

func setupStore(t *testing.T) *library.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return library.NewStore(db)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fastPacer keeps tests from sleeping between mocked catalog calls.
func fastPacer() *Pacer {
	return NewPacer(time.Microsecond)
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
