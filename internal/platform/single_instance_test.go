package platform

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstance(t *testing.T) {
	appName := "restwatch-test-" + t.Name()

	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("lock port unavailable: %v", err)
	}
	assert.True(t, InstanceRunning(appName))

	_, err = AcquireSingleInstance(appName)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	require.NoError(t, guard.Release())
	assert.False(t, InstanceRunning(appName))

	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	assert.Equal(t, guard.Address(), again.Address())
	require.NoError(t, again.Release())
}

func TestPortFromName(t *testing.T) {
	for _, name := range []string{"", "restwatch", "Restwatch", "some other app"} {
		port := portFromName(name)
		assert.GreaterOrEqual(t, port, 20000)
		assert.LessOrEqual(t, port, 39999)
		assert.Equal(t, port, portFromName(name), "port must be stable")
	}
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
