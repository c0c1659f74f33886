// Package debugger drives the execution engine one instruction at a
// time behind a terminal UI: stepping, breakpoints, and state
// inspection over a loaded program.
package debugger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lookbusy1344/aarch64-emulator/assembler"
	"github.com/lookbusy1344/aarch64-emulator/loader"
	"github.com/lookbusy1344/aarch64-emulator/vm"
)

// ErrQuit is returned by Execute when the user asks to leave
var ErrQuit = errors.New("quit debugger")

// State is the debugger's execution state
type State int

const (
	StateIdle State = iota
	StateRunning
	StateHalted
)

// View is the controller's handle on the display; nil outside the
// TUI. The view never mutates emulator state.
type View interface {
	Refresh()
}

// Debugger composes the execution engine with the source map and
// breakpoint set. All mutation flows through Execute; the view
// renders CurrentLine, the breakpoint set, and the output log.
type Debugger struct {
	Program *assembler.Program
	Machine *vm.VM

	Breakpoints *BreakpointSet
	History     *CommandHistory

	State State

	// CurrentLine is the next source line to execute; 0 when no
	// program is running
	CurrentLine int

	// LastCommand repeats on empty input
	LastCommand string

	// Output collects command responses for the log pane
	Output strings.Builder

	view View

	// pendingRestart is set while a run-restart confirmation is
	// outstanding; the next input line answers it
	pendingRestart bool
}

// New creates a debugger over an assembled program and a machine
func New(program *assembler.Program, machine *vm.VM) *Debugger {
	return &Debugger{
		Program:     program,
		Machine:     machine,
		Breakpoints: NewBreakpointSet(),
		History:     NewCommandHistory(1000),
	}
}

// SetView attaches the display
func (d *Debugger) SetView(v View) {
	d.view = v
}

func (d *Debugger) refreshView() {
	if d.view != nil {
		d.view.Refresh()
	}
}

// Printf writes formatted output to the log buffer
func (d *Debugger) Printf(format string, args ...any) {
	d.Output.WriteString(fmt.Sprintf(format, args...))
}

// GetOutput returns and clears the output buffer
func (d *Debugger) GetOutput() string {
	output := d.Output.String()
	d.Output.Reset()
	return output
}

// Execute parses and runs one command line. Empty input repeats the
// last command. Invalid input is reported to the log and the prompt
// returns; only quit propagates an error.
func (d *Debugger) Execute(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)

	// An outstanding restart confirmation consumes the next line
	if d.pendingRestart {
		return d.answerRestart(cmdLine)
	}

	if cmdLine == "" {
		cmdLine = d.LastCommand
		if cmdLine == "" {
			return nil
		}
	} else {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	args := strings.Fields(cmdLine)
	return d.dispatch(args[0], args[1:])
}

// lineForPC maps the machine's PC to its source line, or 0
func (d *Debugger) lineForPC() int {
	return d.Program.LineForAddr[uint32(d.Machine.CPU.PC)]
}

// reset reinitializes registers, memory and PC, and reloads the
// program image
func (d *Debugger) reset() error {
	d.Machine.Reset()
	if err := loader.LoadWordsIntoVM(d.Machine, d.Program.Words); err != nil {
		return err
	}
	d.Machine.State = vm.StateRunning
	d.State = StateRunning
	d.CurrentLine = d.lineForPC()
	return nil
}

// stepOnce advances the machine by one instruction. It reports
// whether a continue loop should keep going: halting, hitting a
// breakpoint, or a runtime error all stop it.
func (d *Debugger) stepOnce() bool {
	if err := d.Machine.Step(); err != nil {
		d.Printf("Runtime error: %v\n", err)
		d.State = StateHalted
		d.CurrentLine = 0
		return false
	}

	if d.Machine.State == vm.StateHalted {
		d.Printf("***End of program reached***\n")
		d.State = StateHalted
		d.CurrentLine = 0
		return false
	}

	d.CurrentLine = d.lineForPC()
	if d.Breakpoints.Has(d.CurrentLine) {
		d.Printf("-----Breakpoint reached: Line %d-----\n", d.CurrentLine)
		return false
	}
	return true
}

// runLoop single-steps until halt, breakpoint or error
func (d *Debugger) runLoop() {
	for d.stepOnce() {
	}
}

// answerRestart consumes the y/n reply to a run-restart prompt
func (d *Debugger) answerRestart(reply string) error {
	switch reply {
	case "y":
		d.pendingRestart = false
		d.Printf("Restarting program:\n")
		if err := d.reset(); err != nil {
			d.Printf("Error: %v\n", err)
			return nil
		}
		d.runLoop()
		d.refreshView()
	case "n":
		d.pendingRestart = false
		d.Printf("Resuming program:\n")
	default:
		d.Printf("Please enter 'y' or 'n'.\n")
	}
	return nil
}
