package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger_Levels(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	tests := []struct {
		name  string
		level string
		dev   bool
		want  logrus.Level
	}{
		{"explicit", "warn", false, logrus.WarnLevel},
		{"upper case", "ERROR", false, logrus.ErrorLevel},
		{"production default", "", false, logrus.InfoLevel},
		{"development default", "", true, logrus.DebugLevel},
		{"invalid falls back", "loud", false, logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := InitLogger(tt.level, tt.dev)
			assert.Equal(t, tt.want, log.GetLevel())
			assert.Same(t, log, GetLogger())
		})
	}
}

func TestInitLogger_Formatter(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")

	_, ok := InitLogger("info", false).Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	_, ok = InitLogger("info", true).Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)

	t.Setenv("LOG_FORMAT", "json")
	_, ok = InitLogger("info", true).Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestContextHelpers(t *testing.T) {
	log := Discard()

	entry := WithPositionContext(log, "run-1", "RB")
	assert.Equal(t, "run-1", entry.Data["correlation_id"])
	assert.Equal(t, "RB", entry.Data["position"])

	entry = WithFileContext(log, "/data/rushing.csv")
	assert.Equal(t, "/data/rushing.csv", entry.Data["file"])
}
