package options

import (
	"flag"
	"io"
	"log/slog"
	"strings"
)

// Parse decodes args into a Settings record. It never fails: unrecognised
// tokens are dropped and every recognised flag is applied left to right, so
// the last of several conflicting flags wins.
func Parse(args []string) *Settings {
	return ParseOnto(*Defaults(), args)
}

// ParseOnto applies args on top of base. Fields that no flag in args touches
// keep the value they have in base.
func ParseOnto(base Settings, args []string) *Settings {
	slog.Debug("Option parser started.", "args", args)
	settings := &base
	settings.Rubies = append(RubySpec{}, base.Rubies...)
	settings.SpecificOptions = base.SpecificOptions.Clone()

	flagSet := newFlagSet(settings)
	ignored := ParseKnown(flagSet, args)
	if len(ignored) > 0 {
		slog.Debug("Ignoring unrecognised arguments.", "args", ignored)
	}

	slog.Debug("Option parser finished.", "settings", settings)
	return settings
}

// PrintDefaults writes the usage of every option Parse understands to w.
func PrintDefaults(w io.Writer) {
	flagSet := newFlagSet(Defaults())
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}

func newFlagSet(s *Settings) *flag.FlagSet {
	flagSet := flag.NewFlagSet("infinity-test", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	testFramework := func(tf TestFramework) func(string) error {
		return func(v string) error {
			if v == "true" {
				s.TestFramework = tf
			}
			return nil
		}
	}
	flagSet.BoolFunc("rspec", "Run specs with RSpec.", testFramework(RSpec))
	flagSet.BoolFunc("bacon", "Run specs with Bacon.", testFramework(Bacon))
	flagSet.BoolFunc("test-unit", "Run tests with Test::Unit.", testFramework(TestUnit))

	flagSet.BoolFunc("rails", "Treat the project as a Rails application.", func(v string) error {
		if v == "true" {
			s.AppFramework = Rails
			s.SkipBundler = false
		}
		return nil
	})
	flagSet.BoolFunc("rubygems", "Treat the project as a gem.", func(v string) error {
		if v == "true" {
			s.AppFramework = RubyGems
		}
		return nil
	})

	flagSet.BoolVar(&s.Verbose, "verbose", s.Verbose, "Print the commands being run.")
	flagSet.BoolVar(&s.SkipBundler, "skip-bundler", s.SkipBundler, "Do not run through bundler even if a Gemfile is present.")
	flagSet.BoolVar(&s.ShowHeuristics, "heuristics", s.ShowHeuristics, "Show the heuristics rules and exit.")
	flagSet.BoolVar(&s.GenerateFile, "generate-file", s.GenerateFile, "Write a starter declaration file.")
	flagSet.BoolVar(&s.Cucumber, "cucumber", s.Cucumber, "Run cucumber features as well.")

	flagSet.Func("rubies", "Comma separated rubies, each optionally followed by '+<flags>'.", func(v string) error {
		s.Rubies, s.SpecificOptions = parseRubies(v)
		return nil
	})

	return flagSet
}

// ParseKnown applies to fs every token of args that names one of its flags
// and returns the tokens it did not consume. Each flag is parsed on its own,
// so a malformed value only loses that flag. Processing stops at "--"; the
// tokens after it are returned unparsed.
func ParseKnown(fs *flag.FlagSet, args []string) []string {
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}

		name, hasValue, ok := flagName(arg)
		if !ok {
			rest = append(rest, arg)
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			rest = append(rest, arg)
			continue
		}

		tokens := []string{arg}
		if !hasValue && !isBoolFlag(f) && i+1 < len(args) {
			i++
			tokens = append(tokens, args[i])
		}
		if err := fs.Parse(tokens); err != nil {
			slog.Debug("Ignoring malformed option.", "option", arg, "error", err)
		}
	}
	return rest
}

// flagName extracts the flag name from "-name", "--name" or "--name=value".
func flagName(arg string) (name string, hasValue bool, ok bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false, false
	}
	name = arg[1:]
	if name[0] == '-' {
		name = name[1:]
	}
	if name == "" || name[0] == '-' || name[0] == '=' {
		return "", false, false
	}
	name, _, hasValue = strings.Cut(name, "=")
	return name, hasValue, true
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}
