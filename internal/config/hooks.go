package config

import (
	"log/slog"
	"os"
	"os/exec"
)

// Callback is the unit of work a hook runs.
type Callback func()

// Hook names one callback slot.
type Hook int

const (
	HookBeforeAll Hook = iota
	HookBeforeEachRuby
	HookBeforeEnv
	HookAfterAll
	HookAfterEachRuby
	hookCount
)

var hookNames = [hookCount]string{"before_all", "before_each_ruby", "before_env", "after_all", "after_each_ruby"}

func (h Hook) String() string {
	if h < 0 || h >= hookCount {
		return "unknown"
	}
	return hookNames[h]
}

// BeforeHook selects a before slot. The zero value is All.
type BeforeHook int

const (
	BeforeAll BeforeHook = iota
	BeforeEachRuby
	BeforeEnv
)

// AfterHook selects an after slot. The zero value is All.
type AfterHook int

const (
	AfterAll AfterHook = iota
	AfterEachRuby
)

func (h BeforeHook) slot() Hook {
	switch h {
	case BeforeEachRuby:
		return HookBeforeEachRuby
	case BeforeEnv:
		return HookBeforeEnv
	default:
		return HookBeforeAll
	}
}

func (h AfterHook) slot() Hook {
	if h == AfterEachRuby {
		return HookAfterEachRuby
	}
	return HookAfterAll
}

// Before installs cb into the before slot h, replacing what was there.
func (c *Configuration) Before(h BeforeHook, cb Callback) *Configuration {
	c.hooks[h.slot()] = cb
	return c
}

// After installs cb into the after slot h, replacing what was there.
func (c *Configuration) After(h AfterHook, cb Callback) *Configuration {
	c.hooks[h.slot()] = cb
	return c
}

// BeforeRun is Before(BeforeAll, cb).
func (c *Configuration) BeforeRun(cb Callback) *Configuration {
	return c.Before(BeforeAll, cb)
}

// AfterRun is After(AfterAll, cb).
func (c *Configuration) AfterRun(cb Callback) *Configuration {
	return c.After(AfterAll, cb)
}

// Callback returns the callback installed in h, or nil.
func (c *Configuration) Callback(h Hook) Callback {
	if h < 0 || h >= hookCount {
		return nil
	}
	return c.hooks[h]
}

// Fire runs the callback installed in h and reports whether there was one.
func (c *Configuration) Fire(h Hook) bool {
	cb := c.Callback(h)
	if cb == nil {
		return false
	}
	cb()
	return true
}

// clearCommand is the executable run by Clear("terminal").
var clearCommand = "clear"

// Clear returns a callback that clears the terminal when target is
// "terminal". Any other target gives a callback that does nothing.
func (c *Configuration) Clear(target string) Callback {
	if target != "terminal" {
		return func() {}
	}
	return func() {
		cmd := exec.Command(clearCommand)
		cmd.Stdout = os.Stdout
		if err := cmd.Run(); err != nil {
			slog.Warn("Clearing the terminal failed.", "error", err)
		}
	}
}
