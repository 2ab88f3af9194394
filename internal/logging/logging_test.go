package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/mastaal/nllegalcit/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.LogConfig
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"defaults", types.LogConfig{}, zapcore.InfoLevel, false},
		{"console debug", types.LogConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"json warn", types.LogConfig{Level: "WARN", Format: "json"}, zapcore.WarnLevel, false},
		{"bad level", types.LogConfig{Level: "loud"}, 0, true},
		{"bad format", types.LogConfig{Format: "xml"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}
