package log

import (
	"testing"

	"github.com/anchore/go-logger/adapter/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_InstallsLogger(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	require.NoError(t, Setup(false))
	assert.NotNil(t, Get())

	require.NoError(t, Setup(true))
	Debugf("debug %d", 1)
	Infof("info %d", 2)
}

func TestSet(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	l := discard.New()
	Set(l)
	assert.Equal(t, l, Get())
	Errorf("dropped %s", "quietly")
	Warnf("dropped %s", "quietly")
	Debug("dropped")
}
