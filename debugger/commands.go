package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/aarch64-emulator/parser"
	"github.com/lookbusy1344/aarch64-emulator/vm"
)

// commandInfo describes one debugger command for help output
type commandInfo struct {
	name    string
	short   string
	help    string
	syntax  string
	example string
}

var commandTable = []commandInfo{
	{"run", "r", "Start/Restart program execution", "Type 'r' or \"run\".", ""},
	{"quit", "q", "Exit the debugger", "Type 'q' or \"quit\".", ""},
	{"continue", "c", "Continue program execution", "Type 'c' or \"continue\".", ""},
	{"next", "n", "Step program", "Type 'n' or \"next\".", ""},
	{"refresh", "ref", "Refresh screen display", "Type \"ref\" or \"refresh\".", ""},
	{"break", "b", "Set a breakpoint at specified line number", "Type 'b' or \"break\".",
		"Example: b 5 - Creates a breakpoint on line 5."},
	{"clear", "cl", "Delete a breakpoint at a specified line number", "Type \"cl\" or \"clear\".",
		"Example: cl 5 - Removes a breakpoint on line 5 if it exists."},
	{"print", "p", "Print value of register or memory", "Type 'p' or \"print\".",
		"Example: p x30 or p *0x4 - Prints the value held at register x30 / memory address 0x4"},
	{"set", "s", "Assign value to a general register or a memory location", "Type 's' or \"set\".",
		"Example: s x0 = 5 or s *0x4 = 5 - Sets the register x0 / memory address 0x4 equal to 5"},
	{"info", "i", "Show information about registers, non-zero memory, pstate or breakpoints", "Type 'i' or \"info\".",
		"Example: i brs - Prints the location of all breakpoints"},
	{"help", "h", "Show information about a specified command, or all commands", "Type 'h' or \"help\".",
		"Example: h run - Prints information about the command \"run\""},
}

func matches(input, name, short string) bool {
	return input == name || input == short
}

// dispatch routes a parsed command to its handler
func (d *Debugger) dispatch(cmd string, args []string) error {
	switch {
	case matches(cmd, "run", "r"):
		return d.cmdRun(args)
	case matches(cmd, "quit", "q"):
		return ErrQuit
	case matches(cmd, "continue", "c"):
		return d.cmdContinue(args)
	case matches(cmd, "next", "n"):
		return d.cmdNext(args)
	case matches(cmd, "refresh", "ref"):
		d.refreshView()
		return nil
	case matches(cmd, "break", "b"):
		return d.cmdBreak(args)
	case matches(cmd, "clear", "cl"):
		return d.cmdClear(args)
	case matches(cmd, "print", "p"):
		return d.cmdPrint(args)
	case matches(cmd, "set", "s"):
		return d.cmdSet(args)
	case matches(cmd, "info", "i"):
		return d.cmdInfo(args)
	case matches(cmd, "help", "h"):
		return d.cmdHelp(args)
	}
	d.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	return nil
}

func (d *Debugger) cmdRun(args []string) error {
	if len(args) != 0 {
		d.Printf("run takes no arguments\n")
		return nil
	}

	if d.State == StateRunning {
		d.pendingRestart = true
		d.Printf("The program is currently running, are you sure you want to start again? (y/n): \n")
		return nil
	}

	if err := d.reset(); err != nil {
		d.Printf("Error: %v\n", err)
		return nil
	}
	d.runLoop()
	d.refreshView()
	return nil
}

func (d *Debugger) cmdContinue(args []string) error {
	if d.State != StateRunning {
		d.Printf("The program has not started yet.\n")
		return nil
	}
	d.runLoop()
	d.refreshView()
	return nil
}

func (d *Debugger) cmdNext(args []string) error {
	if d.State != StateRunning {
		d.Printf("The program has not started yet.\n")
		return nil
	}
	d.stepOnce()
	d.refreshView()
	return nil
}

// lineNumber validates a breakpoint line argument
func (d *Debugger) lineNumber(arg string) (int, bool) {
	line, err := strconv.Atoi(arg)
	if err != nil {
		d.Printf("ERROR: Invalid number passed in.\n")
		return 0, false
	}
	if line <= 0 || line > len(d.Program.Source) {
		d.Printf("ERROR: Line number out of range.\n")
		return 0, false
	}
	return line, true
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) != 1 {
		d.Printf("Usage: break <line>\n")
		return nil
	}
	line, ok := d.lineNumber(args[0])
	if !ok {
		return nil
	}
	d.Breakpoints.Add(line)
	d.refreshView()
	return nil
}

func (d *Debugger) cmdClear(args []string) error {
	if len(args) != 1 {
		d.Printf("Usage: clear <line>\n")
		return nil
	}
	line, ok := d.lineNumber(args[0])
	if !ok {
		return nil
	}
	if !d.Breakpoints.Remove(line) {
		d.Printf("Breakpoint does not exist\n")
		return nil
	}
	d.refreshView()
	return nil
}

func (d *Debugger) cmdPrint(args []string) error {
	if len(args) != 1 {
		d.Printf("Usage: print <register|*0xaddr>\n")
		return nil
	}
	loc := args[0]

	if parser.IsRegister(loc) {
		reg, err := parser.RegisterIndex(loc)
		if err != nil {
			d.Printf("Illegal arguments passed in print: %s\n", loc)
			return nil
		}
		var value uint64
		switch {
		case parser.IsZeroRegister(loc):
			value = 0
		case parser.Is32Bit(loc):
			value = uint64(d.Machine.CPU.Read32(reg))
		default:
			value = d.Machine.CPU.Read64(reg)
		}
		d.Printf("X%02d = 0x%08x\n", reg, value)
		return nil
	}

	if addr, ok := memoryLocation(loc); ok {
		word, err := d.Machine.Memory.ReadWord(addr)
		if err != nil {
			d.Printf("ERROR: %v\n", err)
			return nil
		}
		d.Printf("*0x%x = 0x%08x\n", addr, word)
		return nil
	}

	d.Printf("Illegal arguments passed in print: %s\n", loc)
	return nil
}

func (d *Debugger) cmdSet(args []string) error {
	if len(args) != 3 || args[1] != "=" {
		d.Printf("Usage: set <register|*0xaddr> = <value>\n")
		return nil
	}
	loc := args[0]

	value, err := parser.ParseImmediate(args[2])
	if err != nil {
		d.Printf("Illegal arguments passed in set: %s\n", args[2])
		return nil
	}

	if parser.IsRegister(loc) {
		if parser.IsZeroRegister(loc) {
			d.Printf("Cannot write to zero register.\n")
			return nil
		}
		reg, err := parser.RegisterIndex(loc)
		if err != nil {
			d.Printf("Illegal arguments passed in set: %s\n", loc)
			return nil
		}
		if parser.Is32Bit(loc) {
			d.Machine.CPU.Write32(reg, uint32(value))
		} else {
			d.Machine.CPU.Write64(reg, uint64(value))
		}
		d.Printf("X%02d := 0x%08x\n", reg, uint64(value))
		d.refreshView()
		return nil
	}

	if addr, ok := memoryLocation(loc); ok {
		if err := d.Machine.Memory.WriteWord(addr, uint32(value)); err != nil {
			d.Printf("ERROR: %v\n", err)
			return nil
		}
		d.Printf("*0x%x := 0x%08x\n", addr, uint32(value))
		d.refreshView()
		return nil
	}

	d.Printf("Illegal arguments passed in set: %s\n", loc)
	return nil
}

// memoryLocation parses a "*0x<hex>" memory denotation
func memoryLocation(loc string) (uint64, bool) {
	if !strings.HasPrefix(loc, "*0x") {
		return 0, false
	}
	addr, err := strconv.ParseUint(loc[3:], 16, 64)
	if err != nil {
		return 0, false
	}
	return addr, true
}

func (d *Debugger) cmdInfo(args []string) error {
	if len(args) != 1 {
		d.Printf("Usage: info {memory|registers|pstate|breakpoints}\n")
		return nil
	}
	switch {
	case matches(args[0], "memory", "mem"):
		d.printMemory()
	case matches(args[0], "registers", "reg"):
		d.printRegisters()
	case matches(args[0], "pstate", "pst"):
		d.Printf("PSTATE : %s\n", d.Machine.CPU.PSTATE)
	case matches(args[0], "breakpoints", "brs"):
		d.printBreakpoints()
	default:
		d.Printf("Illegal arguments passed in info: %s\n", args[0])
	}
	return nil
}

func (d *Debugger) printMemory() {
	d.Printf("Non-Zero Memory:\n")
	for addr := uint64(0); addr < vm.MemorySize; addr += 4 {
		word, err := d.Machine.Memory.ReadWord(addr)
		if err != nil {
			return
		}
		if word != 0 {
			d.Printf("0x%08x: %08x\n", addr, word)
		}
	}
}

func (d *Debugger) printRegisters() {
	d.Printf("Registers:\n")
	for i := 0; i < vm.NumRegisters; i += 4 {
		var cols []string
		for j := i; j < i+4 && j < vm.NumRegisters; j++ {
			cols = append(cols, fmt.Sprintf("X%02d = %016x", j, d.Machine.CPU.Read64(j)))
		}
		d.Printf("%s\n", strings.Join(cols, "   "))
	}
	d.Printf("PC  = %016x\n", d.Machine.CPU.PC)
}

func (d *Debugger) printBreakpoints() {
	if d.Breakpoints.Count() == 0 {
		d.Printf("Breakpoints is empty\n")
		return
	}
	d.Printf("Breakpoints:\n")
	for _, line := range d.Breakpoints.Lines() {
		d.Printf("Breakpoint at line %d\n", line)
	}
}

func (d *Debugger) cmdHelp(args []string) error {
	if len(args) == 0 {
		d.Printf("List of commands:\n")
		for _, cmd := range commandTable {
			d.Printf("%-10s: %s\n", cmd.name, cmd.help)
		}
		return nil
	}

	for _, cmd := range commandTable {
		if matches(args[0], cmd.name, cmd.short) {
			d.Printf(" - %s\n", cmd.help)
			d.Printf(" - %s\n", cmd.syntax)
			if cmd.example != "" {
				d.Printf(" - %s\n", cmd.example)
			}
			return nil
		}
	}
	d.Printf("Illegal arguments passed in help: %s\n", args[0])
	return nil
}
