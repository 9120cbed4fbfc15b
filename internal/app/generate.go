package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StarterFileName is the declaration file written by --generate-file.
const StarterFileName = ".infinity_test.hcl"

const starterFile = `# infinity_test declaration file.
# Command-line flags are applied on top of what is declared here.

use {
  # rubies = ["1.8.7", "1.9.2"]
  # gemset = "my_project"
  # specific_options = {
  #   "1.8.7" = "-w"
  # }
  test_framework = "rspec"
  app_framework  = "rubygems"
  verbose        = true
}

# skip_bundler = true

ignore {
  exceptions = [".git", "vendor", "tmp"]
}

# notifications "growl" {
#   success_image = "images/success.png"
#   pending_image = "images/pending.png"
#   failure_image = "images/failure.png"
# }

before "all" {
  clear = "terminal"
}

# after "each_ruby" {
#   command = ["echo", "done"]
# }

heuristics {
  rule "^lib/(.*)\\.rb$" {
    run = "spec/%1_spec.rb"
  }
}
`

// generateFile writes the starter declaration file into the working directory.
// It never overwrites an existing file.
func (a *App) generateFile() error {
	path := filepath.Join(a.config.WorkDir, StarterFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("declaration file %s already exists, not overwriting", path)
		}
		return fmt.Errorf("failed to create declaration file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(starterFile); err != nil {
		return fmt.Errorf("failed to write declaration file %s: %w", path, err)
	}
	a.logger.Info("Declaration file written.", "path", path)
	return nil
}
