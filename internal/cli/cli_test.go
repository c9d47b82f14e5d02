package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
)

func memoryEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "cli-test-secret")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("COMMISSION_RATES_FILE", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseAt(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339 keeps the instant", "2024-03-01T08:00:00Z", time.Date(2024, 3, 1, 15, 0, 0, 0, loc)},
		{"local with T", "2024-03-01T08:00", time.Date(2024, 3, 1, 8, 0, 0, 0, loc)},
		{"local with space", "2024-03-01 08:00", time.Date(2024, 3, 1, 8, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAt(tt.value, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, loc, got.Location())
		})
	}

	_, err := parseAt("yesterday", loc)
	assert.Error(t, err)
}

func TestReconcileCommand(t *testing.T) {
	memoryEnv(t)

	out, err := execute(t, "reconcile", "--at", "2024-03-01 08:00", "--format", "json")
	require.NoError(t, err)

	var report attendance.ReconcileReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, attendance.ReconcileReport{}, report)

	out, err = execute(t, "reconcile", "--at", "2024-03-01 08:00")
	require.NoError(t, err)
	assert.Contains(t, out, "reconciled at 2024-03-01T08:00:00Z")

	_, err = execute(t, "reconcile", "--at", "soon")
	assert.ErrorContains(t, err, "invalid --at")
}

func TestSalaryCalcCommand(t *testing.T) {
	memoryEnv(t)

	_, err := execute(t, "salary", "calc")
	assert.ErrorContains(t, err, "required flag")

	_, err = execute(t, "salary", "calc", "--employee", "E1", "--year", "2024", "--month", "3", "--a", "ten")
	assert.ErrorContains(t, err, "invalid --a")

	// Nothing is stored for E1 in a fresh memory store.
	_, err = execute(t, "salary", "calc", "--employee", "E1", "--year", "2024", "--month", "3", "--a", "12", "--b", "15")
	assert.Error(t, err)
}

func TestMigrateRequiresPostgres(t *testing.T) {
	memoryEnv(t)

	_, err := execute(t, "migrate", "up")
	assert.ErrorContains(t, err, "STORE_DRIVER=postgres")
}

func TestInvalidFormat(t *testing.T) {
	memoryEnv(t)

	_, err := execute(t, "reconcile", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")
}
