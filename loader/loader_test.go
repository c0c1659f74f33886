package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/aarch64-emulator/loader"
	"github.com/lookbusy1344/aarch64-emulator/vm"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bin")
	words := []uint32{0xD28000A0, vm.HaltInstruction}

	require.NoError(t, loader.WriteImage(path, words))

	image, err := loader.ReadImage(path)
	require.NoError(t, err)
	require.Len(t, image, 8)

	// Little-endian word order
	assert.Equal(t, []byte{0xA0, 0x00, 0x80, 0xD2}, image[:4])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x8A}, image[4:])
}

func TestReadImage_MissingFile(t *testing.T) {
	_, err := loader.ReadImage(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

func TestReadImage_RaggedSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0600))

	_, err := loader.ReadImage(path)
	assert.Error(t, err)
}

func TestLoadIntoVM_StartsAtZero(t *testing.T) {
	machine := vm.NewVM()
	require.NoError(t, loader.LoadIntoVM(machine, []byte{0xA0, 0x00, 0x80, 0xD2}))

	assert.Equal(t, uint64(0), machine.CPU.PC)
	word, err := machine.Memory.ReadWord(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xD28000A0), word)
}

func TestLoadWordsIntoVM(t *testing.T) {
	machine := vm.NewVM()
	require.NoError(t, loader.LoadWordsIntoVM(machine, []uint32{0x11223344, 0x55667788}))

	first, err := machine.Memory.ReadWord(0)
	require.NoError(t, err)
	second, err := machine.Memory.ReadWord(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x11223344), first)
	assert.Equal(t, uint32(0x55667788), second)
}
