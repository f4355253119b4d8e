package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
	"github.com/elektrokombinacija/robovac-sim/internal/layout"
)

func TestGenerateWritesParsableLayout(t *testing.T) {
	dir := t.TempDir()
	info, err := generate("corridor", 7, dir)
	require.NoError(t, err)

	assert.Equal(t, "corridor_7.txt", info.File)
	assert.Equal(t, 60, info.Width)
	assert.Equal(t, 8, info.Height)

	f, err := os.Open(filepath.Join(dir, info.File))
	require.NoError(t, err)
	defer f.Close()

	g, err := layout.ParseASCII(f)
	require.NoError(t, err)
	assert.Equal(t, core.Dock, g[info.Dock.Y][info.Dock.X])
}

func TestGenerateUnknownRoom(t *testing.T) {
	_, err := generate("attic", 1, t.TempDir())
	assert.ErrorIs(t, err, layout.ErrUnknownRoom)
}
