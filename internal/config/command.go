package config

import (
	"log/slog"
	"os"
	"os/exec"

	"github.com/vk/infinitytest/internal/heuristics"
	"github.com/vk/infinitytest/internal/watch"
)

// CommandCallback returns a callback running argv with the process's standard
// streams, or nil when argv is empty. Failures are logged, not returned:
// callbacks have no way to report them.
func CommandCallback(argv []string) Callback {
	if len(argv) == 0 {
		return nil
	}
	argv = append([]string(nil), argv...)
	return func() {
		runCommand(argv)
	}
}

// CommandAction returns a watch action running argv after replacing %N in
// every argument with capture group N of the matched pattern.
func CommandAction(argv []string) watch.Action {
	if len(argv) == 0 {
		return nil
	}
	argv = append([]string(nil), argv...)
	return func(path string, groups []string) {
		runCommand(expandArgs(argv, groups))
	}
}

func expandArgs(argv, groups []string) []string {
	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = heuristics.Expand(arg, groups)
	}
	return out
}

func runCommand(argv []string) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		slog.Warn("Callback command failed.", "command", argv, "error", err)
	}
}
