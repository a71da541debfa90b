package logger

import (
	"bytes"
	"testing"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New("APP", config.ColorGreen, nil)
	assert.ErrorIs(t, err, ErrNilWriter)
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("MAZE", config.ColorCyan, &buf)
	require.NoError(t, err)

	tests := []struct {
		name  string
		log   func(string)
		level string
		color string
	}{
		{name: "Info", log: l.Info, level: "[INFO]", color: config.LogInfoColor},
		{name: "Warning", log: l.Warning, level: "[WARNING]", color: config.LogErrorColor},
		{name: "Error", log: l.Error, level: "[ERROR]", color: config.LogErrorColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log("generated 3x3 maze")

			line := buf.String()
			assert.Contains(t, line, config.ColorCyan+"[MAZE]"+config.ColorReset)
			assert.Contains(t, line, tt.color+tt.level)
			assert.Contains(t, line, "generated 3x3 maze\n")
		})
	}
}
