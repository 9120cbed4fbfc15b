package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Match(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	b := New()
	require.NoError(t, b.Add(`^lib/(.*)\.rb$`, "spec/%1_spec.rb"))
	require.NoError(t, b.Add(`^spec/spec_helper\.rb$`, "spec"))
	require.NoError(t, b.Add(`\.rb$`, "all"))

	// --- Act & Assert ---
	assert.Equal(t, []string{"spec/models/user_spec.rb", "all"}, b.Match("lib/models/user.rb"))
	assert.Equal(t, []string{"spec", "all"}, b.Match("spec/spec_helper.rb"))
	assert.Empty(t, b.Match("README.md"))
	assert.Len(t, b.Rules(), 3)
}

func TestBuilder_InvalidPattern(t *testing.T) {
	t.Parallel()

	b := New()

	err := b.Add(`(`, "spec")

	assert.ErrorContains(t, err, "invalid heuristics pattern")
	assert.Empty(t, b.Rules())
}

func TestExpand_TwoDigitGroups(t *testing.T) {
	t.Parallel()

	groups := []string{"all", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	assert.Equal(t, "j-a", Expand("%10-%1", groups))
}

func TestExpand_CapturedTextIsNotExpandedAgain(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	b := New()
	require.NoError(t, b.Add(`^(a)/(.*)$`, "run %2"))

	// --- Act ---
	got := b.Match("a/%1x")

	// --- Assert ---
	assert.Equal(t, []string{"run %1x"}, got)
}

func TestExpand_UnknownGroupIsKept(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "spec/%3_spec.rb", Expand("spec/%3_spec.rb", []string{"lib/x.rb", "x"}))
}
