package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerBeforeInit(t *testing.T) {
	baseLogger, sugared = nil, nil

	assert.NotNil(t, GetLogger())
	assert.NotNil(t, GetZapLogger())
	Sync()
}

func TestInitDebug(t *testing.T) {
	t.Cleanup(func() { baseLogger, sugared = nil, nil })

	require.NoError(t, Init(true))
	assert.NotNil(t, GetZapLogger())
	assert.Same(t, GetLogger(), sugared)
}
