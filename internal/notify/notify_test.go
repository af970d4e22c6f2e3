package notify

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeBackend struct {
	sent []string
	err  error
}

func (backend *fakeBackend) send(summary, body string) error {
	backend.sent = append(backend.sent, summary+"|"+body)
	return backend.err
}

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func TestNotifierDelivers(t *testing.T) {
	logger, logs := observedLogger()
	backend := &fakeBackend{}
	notifier := &Notifier{backend: backend, logger: logger}

	notifier.Notify("Short break (1/3)", "Take a pause!")

	assert.Equal(t, []string{"Short break (1/3)|Take a pause!"}, backend.sent)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestNotifierSwallowsFailures(t *testing.T) {
	logger, logs := observedLogger()
	backend := &fakeBackend{err: errors.New("service unknown")}
	notifier := &Notifier{backend: backend, logger: logger}

	assert.NotPanics(t, func() { notifier.Notify("Long break", "Take a long pause!") })

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "notification failed", warnings[0].Message)
}

func TestNotifierWithoutBackendLogs(t *testing.T) {
	logger, logs := observedLogger()
	notifier := &Notifier{logger: logger}

	notifier.Notify("Welcome back", "15m until next break")

	entries := logs.FilterMessage("Welcome back").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "15m until next break", entries[0].ContextMap()["body"])
}

func TestLogNotifierNilLogger(t *testing.T) {
	assert.NotPanics(t, func() { LogNotifier{}.Notify("a", "b") })
}
