package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New("warn", "json", "health-manage")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = New("bogus", "console", "")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "console", FormatFor("development", ""))
	assert.Equal(t, "json", FormatFor("production", ""))
	assert.Equal(t, "console", FormatFor("production", "console"))
}
