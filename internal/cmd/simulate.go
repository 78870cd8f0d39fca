package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/remapper/device"
	"github.com/Alia5/remapper/device/keyboard"
	"github.com/Alia5/remapper/event"
	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/internal/log"
	"github.com/Alia5/remapper/internal/rules"
	"github.com/Alia5/remapper/mousekey"
)

// Simulate applies the manipulators of a rule file to one key press and
// prints the events they would send.
type Simulate struct {
	File          string        `arg:"" type:"existingfile" help:"Rule file"`
	Keys          []string      `arg:"" help:"Keys pressed together, in press order (a, consumer_key_code:mute, pointing_button:button1)"`
	State         ModifierState `embed:""`
	Strict        bool          `help:"Fail on the first invalid rule instead of skipping it" env:"REMAPPER_STRICT"`
	Ticks         int           `help:"Mouse key ticks to run for mouse_key output" default:"3"`
	NaturalScroll bool          `help:"Host scrolls naturally; otherwise mouse_key wheel axes are inverted" default:"true" negatable:""`
}

// Run is called by Kong when the simulate command is executed.
func (s *Simulate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	return s.Execute(logger, rawLogger, os.Stdout)
}

func (s *Simulate) Execute(logger *slog.Logger, rawLogger log.RawLogger, out io.Writer) error {
	keys := make([]hid.MomentarySwitchEvent, 0, len(s.Keys))
	for _, k := range s.Keys {
		e, err := parseKey(k)
		if err != nil {
			return err
		}
		keys = append(keys, e)
	}
	state, err := s.State.Snapshot()
	if err != nil {
		return err
	}

	loader, err := rules.NewLoader(rules.Options{Strict: s.Strict, Logger: logger})
	if err != nil {
		return err
	}
	f, err := loader.LoadFile(s.File)
	if err != nil {
		return err
	}

	for i, m := range f.Manipulators() {
		r, ok := m.Apply(keys, state)
		if !ok {
			continue
		}
		logger.Debug("manipulator matched", "index", i, "description", m.Description, "simultaneous", m.From.IsSimultaneous(), "consumed", r.Consumed)
		if m.NeedsPointingDevice() {
			logger.Debug("manipulator needs a virtual pointing device", "index", i)
		}

		_, _ = fmt.Fprintln(out, "key down:")
		s.print(out, r.KeyDown)
		_, _ = fmt.Fprintln(out, "key up:")
		s.print(out, r.KeyUp)
		traceKeyboard(rawLogger, append(append([]event.Event(nil), r.KeyDown...), r.KeyUp...))
		s.runMouseKeys(out, rawLogger, r.KeyDown)
		return nil
	}

	_, _ = fmt.Fprintln(out, "no manipulator matched")
	return nil
}

func (s *Simulate) print(out io.Writer, events []event.Event) {
	for _, e := range events {
		_, _ = fmt.Fprintf(out, "  %s\n", e)
	}
}

// runMouseKeys feeds the mouse_key events into an accumulator the way the
// dispatcher does while the key is held.
func (s *Simulate) runMouseKeys(out io.Writer, rawLogger log.RawLogger, events []event.Event) {
	acc := mousekey.NewAccumulator(!s.NaturalScroll)
	for _, e := range events {
		if v, ok := e.MouseKey(); ok {
			acc.Push(0, v)
		}
	}
	if !acc.Active() {
		return
	}

	_, _ = fmt.Fprintf(out, "mouse (every %s):\n", mousekey.TickInterval)
	for i := 0; i < s.Ticks; i++ {
		report, ok := acc.Tick()
		if !ok {
			break
		}
		_, _ = fmt.Fprintf(out, "  %s\n", report)
		logReport(rawLogger, "mouse", &report)
	}
}

// traceKeyboard replays the keyboard page key events on a virtual keyboard
// and traces the report after each one.
func traceKeyboard(rawLogger log.RawLogger, events []event.Event) {
	var st keyboard.InputState
	for _, e := range events {
		sw, ok := e.MomentarySwitchEvent()
		if !ok || sw.UsagePage != hid.PageKeyboardOrKeypad || sw.Usage > 0xFF {
			continue
		}
		switch e.Direction() {
		case event.DirectionKeyDown:
			st.Press(uint8(sw.Usage))
		case event.DirectionKeyUp:
			st.Release(uint8(sw.Usage))
		default:
			continue
		}
		logReport(rawLogger, "keyboard", st)
	}
}

func logReport(rawLogger log.RawLogger, name string, rb device.ReportBuilder) {
	rawLogger.Log(name, rb.BuildReport())
}
