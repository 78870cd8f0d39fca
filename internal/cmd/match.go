package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/remapper/modifier"
)

// Match runs the modifier matcher against a pressed-modifier snapshot.
type Match struct {
	Mandatory []string      `help:"Mandatory modifier categories" sep:","`
	Optional  []string      `help:"Optional modifier categories" sep:","`
	State     ModifierState `embed:""`
}

// Run is called by Kong when the match command is executed.
func (m *Match) Run(logger *slog.Logger) error {
	return m.Execute(logger, os.Stdout)
}

func (m *Match) Execute(logger *slog.Logger, out io.Writer) error {
	mandatory, err := modifier.ParseNames(m.Mandatory)
	if err != nil {
		return err
	}
	optional, err := modifier.ParseNames(m.Optional)
	if err != nil {
		return err
	}
	state, err := m.State.Snapshot()
	if err != nil {
		return err
	}

	logger.Debug("matching modifiers", "mandatory", mandatory, "optional", optional, "pressed", state)
	consumed, ok := modifier.Test(mandatory, optional, state)
	if !ok {
		_, _ = fmt.Fprintln(out, "no match")
		return nil
	}
	_, _ = fmt.Fprintf(out, "match %s\n", consumed)
	return nil
}
