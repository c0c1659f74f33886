package debugger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/aarch64-emulator/config"
)

// TUI is the split-pane terminal view over the debugger: source
// above, command log below, single-line prompt at the bottom. It is
// a pure view; every mutation goes through Controller.Execute.
type TUI struct {
	Controller *Debugger
	Config     *config.Config

	App        *tview.Application
	SourceView *tview.TextView
	LogView    *tview.TextView
	Input      *tview.InputField
	Layout     *tview.Flex
}

// NewTUI builds the terminal interface over a debugger
func NewTUI(controller *Debugger, cfg *config.Config) *TUI {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	t := &TUI{
		Controller: controller,
		Config:     cfg,
		App:        tview.NewApplication(),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	controller.SetView(t)

	return t
}

func (t *TUI) initializeViews() {
	t.SourceView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	t.LogView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	t.LogView.SetBorder(true).SetTitle(" Commands ")

	t.Input = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	t.Input.SetBorder(true)
	t.Input.SetDoneFunc(t.handleInput)
}

func (t *TUI) buildLayout() {
	t.Layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.SourceView, 0, 2, false).
		AddItem(t.LogView, 0, 1, false).
		AddItem(t.Input, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		row, _ := t.SourceView.GetScrollOffset()
		switch event.Key() {
		case tcell.KeyUp:
			t.SourceView.ScrollTo(row-1, 0)
			return nil
		case tcell.KeyDown:
			t.SourceView.ScrollTo(row+1, 0)
			return nil
		case tcell.KeyPgUp:
			t.SourceView.ScrollTo(row-10, 0)
			return nil
		case tcell.KeyPgDn:
			t.SourceView.ScrollTo(row+10, 0)
			return nil
		case tcell.KeyCtrlP:
			t.Input.SetText(t.Controller.History.Previous())
			return nil
		case tcell.KeyCtrlN:
			t.Input.SetText(t.Controller.History.Next())
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		return event
	})
}

// handleInput runs the entered command; empty input repeats the last
// command through the controller
func (t *TUI) handleInput(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.Input.GetText()
	t.Input.SetText("")

	err := t.Controller.Execute(cmd)
	if output := t.Controller.GetOutput(); output != "" {
		t.writeLog(output)
	}
	if errors.Is(err, ErrQuit) {
		t.App.Stop()
		return
	}
	t.Refresh()
}

func (t *TUI) writeLog(text string) {
	_, _ = fmt.Fprint(t.LogView, tview.Escape(text))
	t.LogView.ScrollToEnd()
}

// Refresh redraws the source pane: line numbers, breakpoint gutter
// markers, and the current line highlight
func (t *TUI) Refresh() {
	var b strings.Builder
	current := t.Controller.CurrentLine

	for i, line := range t.Controller.Program.Source {
		lineNum := i + 1

		gutter := " "
		if t.Controller.Breakpoints.Has(lineNum) {
			gutter = t.Config.Display.BreakpointMark
		}

		if lineNum == current && t.Config.Display.ColorOutput {
			fmt.Fprintf(&b, "[black:yellow]%s%3d  %s[-:-]\n", gutter, lineNum, tview.Escape(line))
		} else if lineNum == current {
			fmt.Fprintf(&b, "%s%3d %s %s\n", gutter, lineNum, t.Config.Display.CurrentLineMark, tview.Escape(line))
		} else {
			fmt.Fprintf(&b, "%s%3d  %s\n", gutter, lineNum, tview.Escape(line))
		}
	}
	t.SourceView.SetText(b.String())

	// Keep the executing line in view
	if current > 0 {
		row := current - 6
		if row < 0 {
			row = 0
		}
		t.SourceView.ScrollTo(row, 0)
	}
}

// Run starts the interface and blocks until quit
func (t *TUI) Run() error {
	t.Refresh()
	t.writeLog("AArch64 Debugger - type 'help' for commands, 'run' to start\n\n")
	return t.App.SetRoot(t.Layout, true).SetFocus(t.Input).EnableMouse(true).Run()
}

// Stop terminates the interface
func (t *TUI) Stop() {
	t.App.Stop()
}
