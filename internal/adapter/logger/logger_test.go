package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestLoggerWritesSchema(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("api", &buf)

	l.Info("member_joined", "Member registered", "req-1", map[string]interface{}{"member_id": 1})
	l.Error("db_failed", "Query failed", "req-2", nil, errors.New("boom"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "api", entries[0].Service)
	assert.Equal(t, "req-1", entries[0].RequestID)
	assert.Equal(t, "member_joined", entries[0].Action)
	assert.Equal(t, "Member registered", entries[0].Message)
	assert.NotEmpty(t, entries[0].Timestamp)
	assert.EqualValues(t, 1, entries[0].Details["member_id"])
	assert.Nil(t, entries[0].Error)

	assert.Equal(t, "ERROR", entries[1].Level)
	require.NotNil(t, entries[1].Error)
	assert.Equal(t, "boom", entries[1].Error.Msg)
}

func TestDebugIsEnabled(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("api", &buf).Debug("http_request", "GET /api/members", "", nil)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-9")
	assert.Equal(t, "req-9", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}
