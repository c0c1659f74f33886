package vm

import (
	"encoding/binary"
	"fmt"
)

// Memory is the emulated address space: a flat, byte-addressable,
// little-endian array of MemorySize bytes. Any access whose span
// exceeds the array is an error; the emulator treats it as fatal.
type Memory struct {
	data []byte
}

// NewMemory creates a zeroed memory image
func NewMemory() *Memory {
	return &Memory{
		data: make([]byte, MemorySize),
	}
}

// Reset clears the memory image
func (m *Memory) Reset() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Size returns the size of the address space in bytes
func (m *Memory) Size() uint64 {
	return MemorySize
}

func (m *Memory) checkBounds(address uint64, span uint64) error {
	if address > MemorySize-span {
		return fmt.Errorf("out of bounds memory access at 0x%X (span %d)", address, span)
	}
	return nil
}

// ReadWord reads a 32-bit little-endian word
func (m *Memory) ReadWord(address uint64) (uint32, error) {
	if err := m.checkBounds(address, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.data[address:]), nil
}

// WriteWord writes a 32-bit little-endian word
func (m *Memory) WriteWord(address uint64, value uint32) error {
	if err := m.checkBounds(address, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.data[address:], value)
	return nil
}

// ReadDoubleWord reads a 64-bit little-endian double word
func (m *Memory) ReadDoubleWord(address uint64) (uint64, error) {
	if err := m.checkBounds(address, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.data[address:]), nil
}

// WriteDoubleWord writes a 64-bit little-endian double word
func (m *Memory) WriteDoubleWord(address uint64, value uint64) error {
	if err := m.checkBounds(address, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.data[address:], value)
	return nil
}

// LoadImage copies a binary image into memory starting at address 0
func (m *Memory) LoadImage(image []byte) error {
	if len(image) > MemorySize {
		return fmt.Errorf("image size %d exceeds memory size %d", len(image), MemorySize)
	}
	copy(m.data, image)
	return nil
}
