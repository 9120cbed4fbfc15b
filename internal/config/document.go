package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/vk/infinitytest/internal/heuristics"
	"github.com/vk/infinitytest/internal/notification"
	"github.com/vk/infinitytest/internal/schema"
)

var beforeHooks = map[string]BeforeHook{
	"all":       BeforeAll,
	"each_ruby": BeforeEachRuby,
	"env":       BeforeEnv,
}

var afterHooks = map[string]AfterHook{
	"all":       AfterAll,
	"each_ruby": AfterEachRuby,
}

// ParseBeforeHook maps "all", "each_ruby" or "env" to its hook. The empty
// string means "all".
func ParseBeforeHook(name string) (BeforeHook, error) {
	if name == "" {
		return BeforeAll, nil
	}
	h, ok := beforeHooks[name]
	if !ok {
		return 0, fmt.Errorf("unknown before hook %q (expected all, each_ruby or env)", name)
	}
	return h, nil
}

// ParseAfterHook maps "all" or "each_ruby" to its hook. The empty string means
// "all".
func ParseAfterHook(name string) (AfterHook, error) {
	if name == "" {
		return AfterAll, nil
	}
	h, ok := afterHooks[name]
	if !ok {
		return 0, fmt.Errorf("unknown after hook %q (expected all or each_ruby)", name)
	}
	return h, nil
}

// FromDocument turns a parsed declaration file into a Declaration.
func FromDocument(doc *schema.Document) Declaration {
	return func(c *Configuration) error {
		if doc == nil {
			return nil
		}
		if doc.Use != nil {
			s := doc.Use.Settings()
			if s.TestFramework != "" && !s.TestFramework.Valid() {
				return fmt.Errorf("unknown test framework %q (expected test_unit, rspec, bacon or cucumber)", s.TestFramework)
			}
			if s.AppFramework != "" && !s.AppFramework.Valid() {
				return fmt.Errorf("unknown app framework %q (expected rubygems or rails)", s.AppFramework)
			}
			c.Use(s)
		}
		if doc.SkipBundler {
			c.SkipBundlerNow()
		}
		if doc.Ignore != nil {
			c.Ignore(doc.Ignore...)
		}
		if n := doc.Notifications; n != nil {
			err := c.Notifications(n.Framework, func(nt *notification.Notification) {
				nt.SetSuccessImage(n.SuccessImage).SetPendingImage(n.PendingImage).SetFailureImage(n.FailureImage)
			})
			if err != nil {
				return err
			}
		}
		hooks, err := hookSlots(doc)
		if err != nil {
			return err
		}
		for slot, h := range hooks {
			if h != nil {
				c.hooks[slot] = c.hookCallback(h)
			}
		}
		if len(doc.Heuristics) > 0 {
			var ruleErr error
			c.Heuristics(func(b *heuristics.Builder) {
				for _, r := range doc.Heuristics {
					if err := b.Add(r.Pattern, r.Run); err != nil && ruleErr == nil {
						ruleErr = err
					}
				}
			})
			if ruleErr != nil {
				return ruleErr
			}
		}
		for _, w := range doc.Watch {
			if _, err := c.Watch(w.Pattern, CommandAction(w.Command)); err != nil {
				return err
			}
		}
		for _, b := range doc.Binaries {
			if err := c.DeclareBinary(b.Name, b.Alias); err != nil {
				return err
			}
		}
		return nil
	}
}

// hookSlots maps the named hook bodies of doc onto their slots. Names are
// visited in sorted order and two names selecting one slot are rejected, so
// the result never depends on map iteration order.
func hookSlots(doc *schema.Document) ([hookCount]*schema.Hook, error) {
	var slots [hookCount]*schema.Hook
	names := [hookCount]string{}
	claim := func(slot Hook, name string, h *schema.Hook) error {
		if slots[slot] != nil {
			return fmt.Errorf("hooks %q and %q both select %s", names[slot], name, slot)
		}
		if h == nil {
			h = &schema.Hook{}
		}
		slots[slot], names[slot] = h, name
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(doc.Before)) {
		hook, err := ParseBeforeHook(name)
		if err != nil {
			return slots, err
		}
		if err := claim(hook.slot(), name, doc.Before[name]); err != nil {
			return slots, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(doc.After)) {
		hook, err := ParseAfterHook(name)
		if err != nil {
			return slots, err
		}
		if err := claim(hook.slot(), name, doc.After[name]); err != nil {
			return slots, err
		}
	}
	return slots, nil
}

// hookCallback combines the clear target and the command of a hook body. An
// empty body still occupies the slot, as a no-op.
func (c *Configuration) hookCallback(h *schema.Hook) Callback {
	if h == nil {
		return func() {}
	}
	var steps []Callback
	if h.Clear != "" {
		steps = append(steps, c.Clear(h.Clear))
	}
	if cmd := CommandCallback(h.Command); cmd != nil {
		steps = append(steps, cmd)
	}
	switch len(steps) {
	case 0:
		return func() {}
	case 1:
		return steps[0]
	default:
		return func() {
			for _, step := range steps {
				step()
			}
		}
	}
}
