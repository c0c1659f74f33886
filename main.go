package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/aarch64-emulator/assembler"
	"github.com/lookbusy1344/aarch64-emulator/config"
	"github.com/lookbusy1344/aarch64-emulator/debugger"
	"github.com/lookbusy1344/aarch64-emulator/loader"
	"github.com/lookbusy1344/aarch64-emulator/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
		configPath  = flag.String("config", "", "Config file path (default: platform config dir)")
		maxCycles   = flag.Uint64("max-cycles", 0, "Maximum CPU cycles before halt (0 = config default)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("AArch64 Emulator %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	cycleLimit := cfg.Execution.MaxCycles
	if *maxCycles != 0 {
		cycleLimit = *maxCycles
	}

	args := flag.Args()
	switch args[0] {
	case "assemble":
		err = runAssemble(args[1:], *verboseMode)
	case "emulate":
		err = runEmulate(args[1:], cycleLimit, *verboseMode)
	case "emulate_debug":
		err = runDebug(args[1:], cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printHelp()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// runAssemble translates an assembly source file into a flat binary
func runAssemble(args []string, verbose bool) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: assemble <input.s> <output.bin>")
	}

	program, err := assembler.AssembleFile(args[0])
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Assembled %d instructions, %d labels\n",
			len(program.Words), len(program.Symbols))
	}

	return loader.WriteImage(args[1], program.Words)
}

// runEmulate executes a binary image until halt and dumps the final
// state to the output file, or stdout when none is given
func runEmulate(args []string, cycleLimit uint64, verbose bool) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: emulate <input.bin> [<output.txt>]")
	}

	image, err := loader.ReadImage(args[0])
	if err != nil {
		return err
	}

	machine := vm.NewVM()
	machine.CycleLimit = cycleLimit
	if err := loader.LoadIntoVM(machine, image); err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Loaded %d bytes, starting execution\n", len(image))
	}

	if err := machine.Run(); err != nil {
		return fmt.Errorf("runtime error at PC=0x%X: %w", machine.CPU.PC, err)
	}

	if verbose {
		fmt.Printf("Halted after %d cycles\n", machine.Cycles)
	}

	out := os.Stdout
	if len(args) == 2 {
		f, err := os.Create(args[1]) // #nosec G304 -- user-specified output path
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[1], err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", cerr)
			}
		}()
		out = f
	}

	return machine.DumpState(out)
}

// runDebug assembles a source file in memory, loads it, and launches
// the TUI debugger
func runDebug(args []string, cfg *config.Config) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: emulate_debug <input.s>")
	}

	program, err := assembler.AssembleFile(args[0])
	if err != nil {
		return err
	}

	machine := vm.NewVM()
	if err := loader.LoadWordsIntoVM(machine, program.Words); err != nil {
		return err
	}

	dbg := debugger.New(program, machine)
	dbg.History = debugger.NewCommandHistory(cfg.Debugger.HistorySize)
	tui := debugger.NewTUI(dbg, cfg)
	return tui.Run()
}

func printHelp() {
	fmt.Printf(`AArch64 Emulator %s

Usage: aarch64-emu [options] assemble <input.s> <output.bin>
       aarch64-emu [options] emulate <input.bin> [<output.txt>]
       aarch64-emu [options] emulate_debug <input.s>

Commands:
  assemble       Translate assembly source into a flat binary image
  emulate        Run a binary image until halt and dump the final state
  emulate_debug  Assemble in-memory and launch the TUI debugger

Options:
  -help          Show this help message
  -version       Show version information
  -verbose       Enable verbose output
  -config PATH   Config file path (default: platform config dir)
  -max-cycles N  Maximum CPU cycles before halt (0 = config default)

Debugger commands (in emulate_debug mode):
  run, r         Start/restart program execution
  continue, c    Continue until breakpoint or halt
  next, n        Execute a single instruction
  break N, b N   Set breakpoint at source line N
  clear N, cl N  Delete breakpoint at source line N
  print LOC      Print a register or memory word
  set LOC = V    Assign a register or memory word
  info TOPIC     Show registers, memory, pstate or breakpoints
  help [CMD]     Show debugger help
  quit, q        Exit the debugger

For more information, see the README.md file.
`, Version)
}
