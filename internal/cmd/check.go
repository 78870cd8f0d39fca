package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/remapper/internal/configpaths"
	"github.com/Alia5/remapper/internal/rules"
)

// Check validates rule files.
type Check struct {
	Files  []string `arg:"" optional:"" type:"path" help:"Rule files to check (defaults to every .json file in the rules directory)"`
	Strict bool     `help:"Fail on the first invalid rule instead of skipping it" env:"REMAPPER_STRICT"`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger) error {
	return c.Execute(logger, os.Stdout)
}

func (c *Check) Execute(logger *slog.Logger, out io.Writer) error {
	loader, err := rules.NewLoader(rules.Options{Strict: c.Strict, Logger: logger})
	if err != nil {
		return err
	}

	var files []*rules.File
	if len(c.Files) == 0 {
		dir, err := configpaths.DefaultRulesDir()
		if err != nil {
			return fmt.Errorf("failed to resolve rules directory: %w", err)
		}
		logger.Debug("checking rules directory", "dir", dir)
		if files, err = loader.LoadDir(dir); err != nil {
			return err
		}
	}
	for _, p := range c.Files {
		f, err := loader.LoadFile(p)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	skipped := 0
	for _, f := range files {
		manipulators := 0
		for _, r := range f.Rules {
			manipulators += len(r.Manipulators)
		}
		_, _ = fmt.Fprintf(out, "%s: %d rules, %d manipulators, %d skipped\n", f.Path, len(f.Rules), manipulators, f.Skipped)
		skipped += f.Skipped
	}
	if skipped > 0 {
		return fmt.Errorf("%d invalid rules or manipulators skipped", skipped)
	}
	return nil
}
