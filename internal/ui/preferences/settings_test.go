package preferences

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restwatch/internal/core/model"
)

func TestFromConfigDefaults(t *testing.T) {
	settings := FromConfig(model.DefaultSchedulerConfig())

	assert.Equal(t, Settings{
		Interval:         "25m",
		ShortBreak:       "5m",
		LongBreakEnabled: true,
		LongBreak:        "15m",
		LongBreakAfter:   "3",
		IdleTimeout:      "5m",
	}, settings)
}

func TestFromConfigWithoutOptionals(t *testing.T) {
	settings := FromConfig(model.SchedulerConfig{WorkInterval: time.Hour, ShortBreak: 90 * time.Second})

	assert.False(t, settings.LongBreakEnabled)
	assert.Equal(t, "15m", settings.LongBreak)
	assert.Equal(t, "3", settings.LongBreakAfter)
	assert.Equal(t, "", settings.IdleTimeout)
	assert.Equal(t, "1h", settings.Interval)
	assert.Equal(t, "1m 30s", settings.ShortBreak)
}

func TestSchedulerConfigRoundTrip(t *testing.T) {
	want := model.DefaultSchedulerConfig()

	got, err := FromConfig(want).SchedulerConfig()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSchedulerConfigDisabledOptionals(t *testing.T) {
	settings := Settings{
		Interval:         "50m",
		ShortBreak:       "10m",
		LongBreakEnabled: false,
		LongBreak:        "garbage",
		LongBreakAfter:   "garbage",
		IdleTimeout:      " ",
	}

	got, err := settings.SchedulerConfig()
	require.NoError(t, err)
	assert.Nil(t, got.LongBreak)
	assert.False(t, got.IdleEnabled())
	assert.Equal(t, 50*time.Minute, got.WorkInterval)
}

func TestSchedulerConfigErrors(t *testing.T) {
	valid := FromConfig(model.DefaultSchedulerConfig())

	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"bad interval", func(s *Settings) { s.Interval = "soon" }},
		{"zero short break", func(s *Settings) { s.ShortBreak = "0s" }},
		{"bad long break", func(s *Settings) { s.LongBreak = "15" }},
		{"count out of range", func(s *Settings) { s.LongBreakAfter = "256" }},
		{"negative count", func(s *Settings) { s.LongBreakAfter = "-1" }},
		{"bad idle timeout", func(s *Settings) { s.IdleTimeout = "5 parsecs" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := valid
			tt.modify(&settings)

			_, err := settings.SchedulerConfig()
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidConfig), "got %v", err)
		})
	}
}
