package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewIsolatedLogger(path)

	l.Debug("POST", "dropped below info", nil)
	l.Info("POST", "post created", map[string]interface{}{"post_id": "p1"})
	l.Warn("CONTENT", "content fallback", nil)
	l.Error("USER", "create failed", map[string]interface{}{"error": "boom"})
	require.NoError(t, l.Sync())

	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "create failed", logs[0].Message)
	assert.Equal(t, "USER", logs[0].Module)
	assert.Equal(t, "post created", logs[2].Message)
	assert.Equal(t, "p1", logs[2].Details["post_id"])

	warns, err := l.GetLogs("warn", 10, 0)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, "WARN", warns[0].Level)

	page, err := l.GetLogs("", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "content fallback", page[0].Message)

	empty, err := l.GetLogs("", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	found, err := l.GetLogById(logs[1].Id)
	require.NoError(t, err)
	assert.Equal(t, logs[1].Message, found.Message)

	_, err = l.GetLogById("missing")
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestZapLogger_MissingFile(t *testing.T) {
	l := &ZapLogger{filePath: filepath.Join(t.TempDir(), "none.log")}
	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
