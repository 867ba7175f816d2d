package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	l, err := New("svc", "prod", "debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = New("svc", "prod", "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	l, err := New("svc", "dev", "loud")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
}

func TestSetLevel(t *testing.T) {
	Init("svc", "prod", "info")
	assert.False(t, L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, SetLevel("debug"))
	assert.True(t, L().Core().Enabled(zap.DebugLevel))

	assert.Error(t, SetLevel("loud"))
	require.NoError(t, SetLevel("info"))
}

func TestNamed(t *testing.T) {
	Init("svc", "prod", "info")
	assert.NotNil(t, Named("auth"))
}
