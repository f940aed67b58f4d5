package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWritesServiceField(t *testing.T) {
	dir := t.TempDir()
	l := Initialize("video_service", dir)
	l.Info("hello")
	l.Sync()

	files, err := filepath.Glob(filepath.Join(dir, "video_service_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), `"service":"video_service"`))
	assert.True(t, strings.Contains(string(content), `"msg":"hello"`))
}

func TestSetDebugMode(t *testing.T) {
	l := SetNewNop()
	assert.False(t, l.DebugMode())

	l.SetDebugMode(true)
	assert.True(t, l.DebugMode())
	assert.True(t, l.With().DebugMode())
}
