package options

// TestFramework names the test framework a run drives.
type TestFramework string

const (
	TestUnit TestFramework = "test_unit"
	RSpec    TestFramework = "rspec"
	Bacon    TestFramework = "bacon"
	Cucumber TestFramework = "cucumber"
)

// AppFramework names the kind of application under test.
type AppFramework string

const (
	RubyGems AppFramework = "rubygems"
	Rails    AppFramework = "rails"
)

// Valid reports whether tf is one of the known test frameworks.
func (tf TestFramework) Valid() bool {
	switch tf {
	case TestUnit, RSpec, Bacon, Cucumber:
		return true
	}
	return false
}

// Valid reports whether af is one of the known application frameworks.
func (af AppFramework) Valid() bool {
	return af == RubyGems || af == Rails
}

// Settings is the flat record produced by Parse. Empty enum fields mean
// "not set" when the record is merged into a configuration.
type Settings struct {
	TestFramework   TestFramework
	AppFramework    AppFramework
	Verbose         bool
	SkipBundler     bool
	ShowHeuristics  bool
	GenerateFile    bool
	Cucumber        bool
	Rubies          RubySpec
	SpecificOptions SpecificOptions

	// Gemset is applied to every ruby when the record is merged into a
	// configuration. The command line has no flag for it; declaration files do.
	Gemset string
}

// Defaults returns the record Parse starts from.
func Defaults() *Settings {
	return &Settings{
		TestFramework:   TestUnit,
		AppFramework:    RubyGems,
		Rubies:          RubySpec{},
		SpecificOptions: SpecificOptions{},
	}
}
