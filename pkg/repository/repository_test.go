package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	_ "modernc.org/sqlite"

	"github.com/JaimeStill/mariner/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

type codeErr int

func (c codeErr) Error() string { return "sqlite error" }
func (c codeErr) Code() int     { return int(c) }

type vessel struct {
	ID   int64
	Name string
}

func scanVessel(s repository.Scanner) (vessel, error) {
	var v vessel
	err := s.Scan(&v.ID, &v.Name)
	return v, err
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE vessels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	return db
}

func TestMapErrorNil(t *testing.T) {
	got := repository.MapError(nil, errNotFound, errDuplicate)
	if got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapErrorNotFound(t *testing.T) {
	got := repository.MapError(sql.ErrNoRows, errNotFound, errDuplicate)
	if !errors.Is(got, errNotFound) {
		t.Errorf("MapError(ErrNoRows) = %v, want %v", got, errNotFound)
	}
}

func TestMapErrorPgDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	got := repository.MapError(pgErr, errNotFound, errDuplicate)
	if !errors.Is(got, errDuplicate) {
		t.Errorf("MapError(PgError 23505) = %v, want %v", got, errDuplicate)
	}
}

func TestMapErrorPgNonDuplicate(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	got := repository.MapError(pgErr, errNotFound, errDuplicate)
	if got != pgErr {
		t.Errorf("MapError(PgError 23503) should pass through, got %v", got)
	}
}

func TestMapErrorSQLiteDuplicate(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "INSERT INTO vessels (name) VALUES ($1)", "Sea Explorer"); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err := db.ExecContext(ctx, "INSERT INTO vessels (name) VALUES ($1)", "Sea Explorer")
	if err == nil {
		t.Fatal("expected unique constraint error")
	}

	if got := repository.MapError(err, errNotFound, errDuplicate); !errors.Is(got, errDuplicate) {
		t.Errorf("MapError(UNIQUE) = %v, want %v", got, errDuplicate)
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	original := errors.New("some other error")
	got := repository.MapError(original, errNotFound, errDuplicate)
	if got != original {
		t.Errorf("MapError(other) = %v, want %v", got, original)
	}
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"busy", codeErr(5), true},
		{"busy snapshot", codeErr(517), true},
		{"locked", codeErr(6), true},
		{"constraint", codeErr(2067), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.IsBusy(tt.err); got != tt.want {
				t.Errorf("IsBusy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetryOnBusy(t *testing.T) {
	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := repository.RetryOnBusy(context.Background(), func() error {
			calls++
			if calls < 3 {
				return codeErr(5)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("stops on other errors", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := repository.RetryOnBusy(context.Background(), func() error {
			calls++
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("got %v, want %v", err, boom)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := repository.RetryOnBusy(context.Background(), func() error {
			calls++
			return codeErr(5)
		})
		if !repository.IsBusy(err) {
			t.Fatalf("expected busy error, got %v", err)
		}
		if calls != 5 {
			t.Errorf("calls = %d, want 5", calls)
		}
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := repository.RetryOnBusy(ctx, func() error {
			return codeErr(5)
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	})
}

func TestQueryHelpers(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	inserted, err := repository.WithTx(ctx, db, func(tx *sql.Tx) ([]vessel, error) {
		var out []vessel
		for _, name := range []string{"Sea Explorer", "Blue Horizon"} {
			v, err := repository.QueryOne(
				ctx, tx,
				"INSERT INTO vessels (name) VALUES ($1) RETURNING id, name",
				[]any{name}, scanVessel,
			)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}
	if len(inserted) != 2 || inserted[0].ID >= inserted[1].ID {
		t.Fatalf("unexpected inserted rows: %+v", inserted)
	}

	all, err := repository.QueryMany(ctx, db, "SELECT id, name FROM vessels ORDER BY id", nil, scanVessel)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if len(all) != 2 || all[0].Name != "Sea Explorer" {
		t.Errorf("QueryMany() = %+v", all)
	}

	none, err := repository.QueryMany(ctx, db, "SELECT id, name FROM vessels WHERE id < 0", nil, scanVessel)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("QueryMany() with no rows = %#v, want empty slice", none)
	}

	if err := repository.ExecExpectOne(ctx, db, "DELETE FROM vessels WHERE id = $1", inserted[0].ID); err != nil {
		t.Fatalf("ExecExpectOne() error = %v", err)
	}

	err = repository.ExecExpectOne(ctx, db, "DELETE FROM vessels WHERE id = $1", inserted[0].ID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ExecExpectOne() on missing row = %v, want sql.ErrNoRows", err)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, "INSERT INTO vessels (name) VALUES ($1)", "Pacific Dream"); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want %v", err, boom)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM vessels").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 after rollback", count)
	}
}
