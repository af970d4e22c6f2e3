package model

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  SchedulerConfig
		wantErr bool
	}{
		{
			name:   "minimal",
			config: SchedulerConfig{WorkInterval: 25 * time.Minute, ShortBreak: 5 * time.Minute},
		},
		{
			name: "full",
			config: SchedulerConfig{
				WorkInterval: 25 * time.Minute,
				ShortBreak:   5 * time.Minute,
				LongBreak:    &LongBreakPolicy{After: 2, Duration: 15 * time.Minute},
				IdleTimeout:  5 * time.Minute,
			},
		},
		{
			name:    "missing interval",
			config:  SchedulerConfig{ShortBreak: 5 * time.Minute},
			wantErr: true,
		},
		{
			name:    "missing short break",
			config:  SchedulerConfig{WorkInterval: 25 * time.Minute},
			wantErr: true,
		},
		{
			name: "zero long break",
			config: SchedulerConfig{
				WorkInterval: 25 * time.Minute,
				ShortBreak:   5 * time.Minute,
				LongBreak:    &LongBreakPolicy{After: 2},
			},
			wantErr: true,
		},
		{
			name: "negative idle timeout",
			config: SchedulerConfig{
				WorkInterval: 25 * time.Minute,
				ShortBreak:   5 * time.Minute,
				IdleTimeout:  -time.Second,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewLongBreakPolicy(t *testing.T) {
	duration := 15 * time.Minute
	after := uint8(3)

	assert.Nil(t, NewLongBreakPolicy(nil, nil))
	assert.Nil(t, NewLongBreakPolicy(&duration, nil))
	assert.Nil(t, NewLongBreakPolicy(nil, &after))
	assert.Equal(t, &LongBreakPolicy{After: 3, Duration: duration}, NewLongBreakPolicy(&duration, &after))
}

func TestIdleEnabled(t *testing.T) {
	assert.False(t, SchedulerConfig{}.IdleEnabled())
	assert.True(t, SchedulerConfig{IdleTimeout: time.Minute}.IdleEnabled())
}
