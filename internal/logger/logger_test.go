package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects log output to a buffer for the duration of a test.
func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

// lines decodes each JSON log line in buf.
func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("test message %s", "arg")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "debug", got[0]["level"])
	assert.Equal(t, "test message arg", got[0]["message"])
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("test message")
	Section("Fetch")

	assert.Zero(t, buf.Len())
}

func TestSection_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Section("Reconcile")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "Reconcile", got[0]["section"])
}

func TestInfoAndWarn_AlwaysEmitted(t *testing.T) {
	buf := capture(t, false)

	Info("fetched %d records", 3)
	Warn("slow response")

	got := lines(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, "fetched 3 records", got[0]["message"])
	assert.Equal(t, "warn", got[1]["level"])
}

func TestError(t *testing.T) {
	buf := capture(t, false)

	Error(errors.New("boom"), "run %s aborted", "core")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "error", got[0]["level"])
	assert.Equal(t, "boom", got[0]["error"])
	assert.Equal(t, "run core aborted", got[0]["message"])
}

func TestRecordFailure_Fields(t *testing.T) {
	buf := capture(t, false)

	RecordFailure("enrich", "core", "A1", "macrostrat", errors.New("timeout"))
	RecordFailure("map", "cutting", "", "", errors.New("missing id"))

	got := lines(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "enrich", got[0]["stage"])
	assert.Equal(t, "core", got[0]["collection"])
	assert.Equal(t, "A1", got[0]["record_id"])
	assert.Equal(t, "macrostrat", got[0]["source"])
	assert.Equal(t, "timeout", got[0]["error"])
	_, hasSource := got[1]["source"]
	assert.False(t, hasSource)
}
