package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Development(t *testing.T) {
	log := New("development")
	assert.NotNil(t, log)

	core := log.Core()
	assert.True(t, core.Enabled(zapcore.DebugLevel), "development logger should allow debug level")
}

func TestNewLogger_Production(t *testing.T) {
	log := New("production")
	assert.NotNil(t, log)

	core := log.Core()
	assert.False(t, core.Enabled(zapcore.DebugLevel), "production logger should not allow debug level")
}

func TestNewLogger_Staging(t *testing.T) {
	log := New("staging")
	assert.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel), "staging logger should not allow debug level")
}
