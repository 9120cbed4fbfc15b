// This file translates the HCL-specific schema.File into the format-agnostic
// schema.Document.

package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/infinitytest/internal/schema"
)

func translateFile(f *schema.File) (*schema.Document, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	doc := &schema.Document{}

	if f.Use != nil {
		use, useDiags := translateUse(f.Use)
		diags = append(diags, useDiags...)
		doc.Use = use
	}
	if f.SkipBundler != nil {
		doc.SkipBundler = *f.SkipBundler
	}
	if f.Ignore != nil {
		doc.Ignore = append([]string{}, f.Ignore.Exceptions...)
	}
	if n := f.Notifications; n != nil {
		doc.Notifications = &schema.Notifications{
			Framework:    n.Framework,
			SuccessImage: n.SuccessImage,
			PendingImage: n.PendingImage,
			FailureImage: n.FailureImage,
		}
	}
	doc.Before = translateHooks(f.Before)
	doc.After = translateHooks(f.After)
	for _, h := range f.Heuristics {
		for _, r := range h.Rules {
			doc.Heuristics = append(doc.Heuristics, &schema.Rule{Pattern: r.Pattern, Run: r.Run})
		}
	}
	for _, w := range f.Watch {
		doc.Watch = append(doc.Watch, &schema.Watch{Pattern: w.Pattern, Command: w.Command})
	}
	for _, b := range f.Binaries {
		doc.Binaries = append(doc.Binaries, &schema.Binary{Name: b.Name, Alias: b.Alias})
	}
	return doc, diags
}

func translateUse(u *schema.UseBlock) (*schema.Use, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	rubies, rubyDiags := decodeRubies(u.Rubies)
	diags = append(diags, rubyDiags...)
	specific, specificDiags := decodeSpecificOptions(u.SpecificOptions)
	diags = append(diags, specificDiags...)

	return &schema.Use{
		Rubies:          rubies,
		SpecificOptions: specific,
		Gemset:          u.Gemset,
		TestFramework:   u.TestFramework,
		AppFramework:    u.AppFramework,
		Verbose:         u.Verbose,
		Cucumber:        u.Cucumber,
		SkipBundler:     u.SkipBundler,
	}, diags
}

// translateHooks keys hook bodies by label; a later block for the same label
// replaces an earlier one.
func translateHooks(blocks []*schema.HookBlock) map[string]*schema.Hook {
	if len(blocks) == 0 {
		return nil
	}
	hooks := make(map[string]*schema.Hook, len(blocks))
	for _, b := range blocks {
		hooks[b.Hook] = &schema.Hook{Clear: b.Clear, Command: b.Command}
	}
	return hooks
}
