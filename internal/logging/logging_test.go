package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewFileWriterDefaults(t *testing.T) {
	w := NewFileWriter(Options{File: "carve.log"})
	assert.Equal(t, "carve.log", w.Filename)
	assert.Equal(t, DefaultMaxSizeMB, w.MaxSize)
	assert.Equal(t, DefaultMaxBackups, w.MaxBackups)
	assert.Equal(t, DefaultMaxAgeDays, w.MaxAge)

	w = NewFileWriter(Options{File: "x.log", MaxSizeMB: 5, MaxBackups: 1, MaxAgeDays: 2})
	assert.Equal(t, 5, w.MaxSize)
	assert.Equal(t, 1, w.MaxBackups)
	assert.Equal(t, 2, w.MaxAge)
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seamcarver.log")

	log := New(Options{File: path})
	log.Info("job done", zap.Int("seams", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"job done"`)
	assert.Contains(t, string(data), `"seams":3`)
}

func TestDebugLevel(t *testing.T) {
	assert.False(t, New(Options{}).Core().Enabled(zapcore.DebugLevel))
	assert.True(t, New(Options{Debug: true}).Core().Enabled(zapcore.DebugLevel))
}

func TestEncoderConfigs(t *testing.T) {
	file := FileEncoderConfig()
	assert.Equal(t, "timestamp", file.TimeKey)
	assert.NotNil(t, file.EncodeTime)

	console := ConsoleEncoderConfig(true)
	assert.Equal(t, "message", console.MessageKey)
	assert.NotNil(t, console.EncodeLevel)
}
