// Package assembler drives the two-pass translation of assembly
// source into a flat sequence of 32-bit instruction words. Each
// non-empty line is lexed, alias-expanded and dispatched to its
// family encoder; labels resolve through the symbol table with
// forward references patched once defined.
package assembler

import (
	"bufio"
	"fmt"
	"os"

	"github.com/lookbusy1344/aarch64-emulator/encoder"
	"github.com/lookbusy1344/aarch64-emulator/parser"
	"github.com/lookbusy1344/aarch64-emulator/vm"
)

// Program is the result of one assembly pass
type Program struct {
	// Words is the emission buffer, one 32-bit word per instruction
	Words []uint32

	// LineForAddr maps each instruction's byte address to its
	// 1-based source line; the debugger's source map
	LineForAddr map[uint32]int

	// Source holds the raw source lines
	Source []string

	// Symbols holds the defined labels
	Symbols map[string]uint32
}

// Bytes renders the emission buffer as a little-endian binary image
func (p *Program) Bytes() []byte {
	image := make([]byte, 0, len(p.Words)*vm.InstructionSize)
	for _, word := range p.Words {
		image = append(image,
			byte(word), byte(word>>8), byte(word>>16), byte(word>>24))
	}
	return image
}

// Assembler holds the state of one translation: the symbol table and
// the emission buffer, with currentAddr tracking the byte address of
// the next word to be emitted.
type Assembler struct {
	symbols     *parser.SymbolTable
	enc         *encoder.Encoder
	words       []uint32
	currentAddr uint32
	lineForAddr map[uint32]int
	filename    string
}

// New creates an assembler for one translation
func New(filename string) *Assembler {
	symbols := parser.NewSymbolTable()
	return &Assembler{
		symbols:     symbols,
		enc:         encoder.New(symbols),
		lineForAddr: make(map[uint32]int),
		filename:    filename,
	}
}

// patch rewrites the displacement field of the already-emitted word
// at instrAddr; the carrier is identified from the word itself
func (a *Assembler) patch(instrAddr uint32, offset int32) error {
	index := instrAddr / vm.InstructionSize
	patched, err := vm.Instruction(a.words[index]).PatchDisplacement(offset)
	if err != nil {
		return err
	}
	a.words[index] = uint32(patched)
	return nil
}

// AssembleLine processes one source line. Labels attach to the
// address of the next instruction to be emitted; instructions append
// one word and advance the current address by 4.
func (a *Assembler) AssembleLine(line string, lineNum int) error {
	pos := parser.Position{Filename: a.filename, Line: lineNum}

	stmt := parser.LexLine(line)
	switch stmt.Kind {
	case parser.StatementEmpty:
		return nil

	case parser.StatementLabel:
		if err := a.symbols.Define(stmt.Label, a.currentAddr, a.patch); err != nil {
			return parser.NewError(pos, err)
		}
		return nil
	}

	if len(stmt.Operands) > parser.MaxOperands {
		return parser.Errorf(pos, "too many operands (%d)", len(stmt.Operands))
	}

	mnemonic, operands := parser.ExpandAlias(stmt.Mnemonic, stmt.Operands)

	word, err := a.enc.Encode(mnemonic, operands, a.currentAddr)
	if err != nil {
		return parser.NewError(pos, err)
	}

	a.words = append(a.words, word)
	a.lineForAddr[a.currentAddr] = lineNum
	a.currentAddr += vm.InstructionSize
	return nil
}

// Finish verifies that no label reference is left unresolved
func (a *Assembler) Finish() error {
	if undefined := a.symbols.Undefined(); len(undefined) > 0 {
		return fmt.Errorf("undefined label %q", undefined[0])
	}
	return nil
}

// Program returns the assembled result
func (a *Assembler) Program(source []string) *Program {
	return &Program{
		Words:       a.words,
		LineForAddr: a.lineForAddr,
		Source:      source,
		Symbols:     a.symbols.Defined(),
	}
}

// AssembleSource assembles in-memory source lines
func AssembleSource(lines []string, filename string) (*Program, error) {
	a := New(filename)
	for i, line := range lines {
		if err := a.AssembleLine(line, i+1); err != nil {
			return nil, err
		}
	}
	if err := a.Finish(); err != nil {
		return nil, err
	}
	return a.Program(lines), nil
}

// AssembleFile reads and assembles a source file
func AssembleFile(path string) (*Program, error) {
	f, err := os.Open(path) // #nosec G304 -- user-specified source path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return AssembleSource(lines, path)
}
