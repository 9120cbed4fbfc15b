package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/infinitytest/internal/notification"
	"github.com/vk/infinitytest/internal/options"
)

func TestDeclare(t *testing.T) {
	t.Parallel()

	// --- Act ---
	c, err := Declare(func(c *Configuration) error {
		c.Use(options.Settings{Rubies: options.RubySpec{"1.8.7", "1.9.2"}, TestFramework: options.RSpec}).
			ApplyGemset("rails3").
			Ignore("vendor")
		return c.Notifications(notification.LibNotify, nil)
	}, nil, func(c *Configuration) error {
		c.BeforeRun(c.Clear("terminal"))
		return nil
	})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "1.8.7@rails3,1.9.2@rails3", c.Rubies().String())
	assert.Equal(t, options.RSpec, c.TestFramework())
	assert.Equal(t, "notify-send", c.NotificationFramework())
	assert.NotNil(t, c.Callback(HookBeforeAll))
}

func TestDeclare_SurfacesUnsupportedNotification(t *testing.T) {
	t.Parallel()

	applied := false
	c, err := Declare(func(c *Configuration) error {
		return c.Notifications("snarl", nil)
	}, func(*Configuration) error {
		applied = true
		return nil
	})

	assert.Nil(t, c)
	assert.ErrorIs(t, err, notification.ErrUnsupportedFramework)
	assert.False(t, applied, "declarations after a failure are not applied")
}
