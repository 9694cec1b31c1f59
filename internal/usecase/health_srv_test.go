package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tourism-booking/internal/dto/response"
	"tourism-booking/internal/storage"
	"tourism-booking/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// fakeDB answers every probe query; queries containing failOn error out.
type fakeDB struct {
	failOn string
}

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for _, d := range dest {
		switch v := d.(type) {
		case *int:
			*v = 1
		case *int64:
			*v = 1
		}
	}
	return nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return fakeRow{err: errors.New("relation does not exist")}
	}
	return fakeRow{}
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close()                     {}

func healthConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "health-probe-secret", ExpiryHours: 1},
	}
}

func readyMediaStore(t *testing.T) *storage.MediaStore {
	t.Helper()
	media := storage.NewMediaStore(t.TempDir(), zap.NewNop())
	if err := media.EnsureBuckets(); err != nil {
		t.Fatalf("ensure buckets: %v", err)
	}
	return media
}

func findCheck(t *testing.T, checks []response.HealthCheckResult, name string) response.HealthCheckResult {
	t.Helper()
	for _, check := range checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %s missing from %v", name, checks)
	return response.HealthCheckResult{}
}

func TestHealthCheckAllProbesPass(t *testing.T) {
	svc := NewHealthService(&fakeDB{}, healthConfig(), readyMediaStore(t), zap.NewNop())

	resp := svc.Check(context.Background())
	if resp.Status != "healthy" {
		t.Fatalf("status = %s, want healthy", resp.Status)
	}
	for _, check := range resp.Checks {
		if !check.Healthy {
			t.Fatalf("check %s unhealthy: %s", check.Name, check.Error)
		}
	}
	// connection + one per critical table + auth + storage
	if want := 1 + len(criticalTables) + 2; len(resp.Checks) != want {
		t.Fatalf("checks = %d, want %d", len(resp.Checks), want)
	}
}

func TestHealthCheckReportsBrokenTable(t *testing.T) {
	svc := NewHealthService(&fakeDB{failOn: "bookings"}, healthConfig(), readyMediaStore(t), zap.NewNop())

	resp := svc.Check(context.Background())
	if resp.Status != "unhealthy" {
		t.Fatalf("status = %s, want unhealthy", resp.Status)
	}

	broken := findCheck(t, resp.Checks, "table_bookings")
	if broken.Healthy || broken.Error == "" {
		t.Fatalf("table_bookings should carry the probe error, got %+v", broken)
	}

	// Other probes still ran and passed; one failure does not stop the scan.
	if check := findCheck(t, resp.Checks, "table_users"); !check.Healthy {
		t.Fatalf("table_users should pass, got %+v", check)
	}
	if check := findCheck(t, resp.Checks, "auth"); !check.Healthy {
		t.Fatalf("auth should pass, got %+v", check)
	}
}

func TestHealthCheckMissingJWTSecret(t *testing.T) {
	config := healthConfig()
	config.JWT.Secret = ""
	svc := NewHealthService(&fakeDB{}, config, readyMediaStore(t), zap.NewNop())

	resp := svc.Check(context.Background())
	if resp.Status != "unhealthy" {
		t.Fatalf("status = %s, want unhealthy", resp.Status)
	}
	if check := findCheck(t, resp.Checks, "auth"); check.Healthy {
		t.Fatal("auth probe must fail without a secret")
	}
}

func TestHealthCheckMissingBucketsIsAdvisory(t *testing.T) {
	media := storage.NewMediaStore(t.TempDir(), zap.NewNop())
	svc := NewHealthService(&fakeDB{}, healthConfig(), media, zap.NewNop())

	// Missing buckets are reported but only degrade voucher downloads, so
	// the aggregate stays healthy while database and auth pass.
	resp := svc.Check(context.Background())
	if resp.Status != "healthy" {
		t.Fatalf("status = %s, want healthy with only storage failing", resp.Status)
	}
	if check := findCheck(t, resp.Checks, "storage"); check.Healthy {
		t.Fatal("storage probe must fail before buckets exist")
	}
}
