package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		dev     bool
		enabled zapcore.Level
		wantErr bool
	}{
		{"info", false, zapcore.InfoLevel, false},
		{"debug", true, zapcore.DebugLevel, false},
		{"ERROR", false, zapcore.ErrorLevel, false},
		{"loud", false, 0, true},
	}
	for _, tt := range tests {
		log, err := New(tt.level, tt.dev)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q): err = %v", tt.level, err)
			continue
		}
		if err != nil {
			continue
		}
		if !log.Core().Enabled(tt.enabled) {
			t.Errorf("New(%q) does not log at %v", tt.level, tt.enabled)
		}
		if tt.enabled > zapcore.DebugLevel && log.Core().Enabled(tt.enabled-1) {
			t.Errorf("New(%q) logs below its level", tt.level)
		}
	}
}
