package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/recipe-catalog-service/internal/config"
)

func TestMapPgError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"serialization", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgerrcode.SerializationFailure}), ErrSnapshotConflict},
		{"deadlock", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, ErrSnapshotConflict},
		{"no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapPgError(tc.in))
		})
	}

	other := errors.New("boom")
	assert.Same(t, other, MapPgError(other))

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.Same(t, unique, MapPgError(unique), "write-path codes are not mapped on a read-only catalog")
}

func TestDSN_EscapesCredentials(t *testing.T) {
	dsn := DSN(config.PostgresConfig{
		Host: "db", Port: 5432, User: "cook", Password: "p@ss/word", DBName: "recipes", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://cook:p%40ss%2Fword@db:5432/recipes?sslmode=disable", dsn)
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.ErrorLevel))
}

func TestPgxLogger_TraceFields(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelTrace, "Query", map[string]any{
		"sql":  "SELECT 1",
		"args": []any{1},
		"time": 3 * time.Millisecond,
		"pid":  uint32(42),
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "pgx", got["component"])
	assert.Equal(t, "SELECT 1", got["sql"])
	assert.Equal(t, "Query", got["message"])
	assert.Contains(t, got, "took")
	assert.NotContains(t, got, "time")
	assert.EqualValues(t, 42, got["pid"])
}

func TestPgxLogger_NoneIsSilent(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))
	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", nil)
	assert.Zero(t, buf.Len())
}

func TestNew_RequiresConfigAndLogger(t *testing.T) {
	logger := zerolog.Nop()
	_, err := New(context.Background(), nil, &logger)
	require.Error(t, err)

	_, err = New(context.Background(), &config.Config{}, nil)
	require.Error(t, err)
}

func TestPgxLogger_DropsSQLAboveTrace(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "SELECT secret",
		"args": []any{"x"},
		"pid":  uint32(7),
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "info", got["level"])
	assert.NotContains(t, got, "sql")
	assert.NotContains(t, got, "args")
	assert.EqualValues(t, 7, got["pid"])
}

func TestPageResult_EmptyAndPast(t *testing.T) {
	res := EmptyResult[int]()
	require.NotNil(t, res.Items)
	assert.True(t, res.Past(0))

	res.Total = 10
	assert.False(t, res.Past(9))
	assert.True(t, res.Past(10))
}
