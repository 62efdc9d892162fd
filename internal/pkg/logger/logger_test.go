package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func resetLogger() {
	mu.Lock()
	global = nil
	mu.Unlock()
	once = sync.Once{}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"json info", "info", "json", zapcore.InfoLevel, false},
		{"console debug", "debug", "console", zapcore.DebugLevel, false},
		{"json warn", "warn", "json", zapcore.WarnLevel, false},
		{"invalid level", "loud", "json", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLogger()
			err := Init(tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, GetLevel())
		})
	}
}

func TestSetLevel(t *testing.T) {
	resetLogger()
	require.NoError(t, Init("info", "json"))

	require.NoError(t, SetLevel("error"))
	assert.Equal(t, zapcore.ErrorLevel, GetLevel())

	assert.Error(t, SetLevel("bogus"))
}

func TestL_NopBeforeInit(t *testing.T) {
	resetLogger()

	assert.NotPanics(t, func() {
		L().Info("dropped")
		Warn("dropped")
	})
	assert.NoError(t, Sync())
}

func TestWithAndSugar(t *testing.T) {
	resetLogger()
	require.NoError(t, Init("info", "console"))

	assert.NotNil(t, With())
	assert.NotNil(t, S())
}
