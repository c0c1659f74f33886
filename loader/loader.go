// Package loader reads and writes the flat binary image format: a
// headerless sequence of 32-bit little-endian words, loaded into
// emulated memory starting at address 0.
package loader

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/lookbusy1344/aarch64-emulator/vm"
)

// ReadImage reads a binary program image from disk
func ReadImage(path string) ([]byte, error) {
	image, err := os.ReadFile(path) // #nosec G304 -- user-specified binary path
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(image) > vm.MemorySize {
		return nil, fmt.Errorf("%s: image size %d exceeds memory size %d", path, len(image), vm.MemorySize)
	}
	if len(image)%vm.InstructionSize != 0 {
		return nil, fmt.Errorf("%s: image size %d is not a whole number of words", path, len(image))
	}
	return image, nil
}

// WriteImage writes instruction words to disk as raw little-endian
// words, one per instruction
func WriteImage(path string, words []uint32) error {
	f, err := os.Create(path) // #nosec G304 -- user-specified output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := binary.Write(f, binary.LittleEndian, words); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// LoadIntoVM places a binary image at address 0 and resets the PC
func LoadIntoVM(machine *vm.VM, image []byte) error {
	return machine.LoadProgram(image)
}

// LoadWordsIntoVM places assembled words at address 0 and resets the
// PC; the in-memory path used by the debugger
func LoadWordsIntoVM(machine *vm.VM, words []uint32) error {
	image := make([]byte, len(words)*vm.InstructionSize)
	for i, word := range words {
		binary.LittleEndian.PutUint32(image[i*vm.InstructionSize:], word)
	}
	return machine.LoadProgram(image)
}
