package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
window:
  title: demo
  width: 800
engine:
  tick_rate: 120
  vsync: false
camera:
  follow: true
  zoom:
    min: 3
    max: 40
    speed: 0.25
    step: 1
  height_lower_key: KeyE
`

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, DefaultTitle, s.Window.Title)
	assert.Equal(t, DefaultWidth, s.Window.Width)
	assert.Equal(t, DefaultHeight, s.Window.Height)
	assert.Equal(t, DefaultTickRate, s.Engine.TickRate)
	assert.True(t, s.Engine.VSync)
	assert.Equal(t, camera.DefaultConfig(), s.Camera)
	assert.NoError(t, s.Validate())
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Window.Title)
	assert.Equal(t, 800, s.Window.Width)
	assert.Equal(t, DefaultHeight, s.Window.Height)
	assert.Equal(t, 120.0, s.Engine.TickRate)
	assert.False(t, s.Engine.VSync)
	assert.True(t, s.Camera.Follow)
	assert.Equal(t, camera.Zoom{Min: 3, Max: 40, Speed: 0.25, Step: 1}, s.Camera.Zoom)
	assert.Equal(t, input.KeyBinding(common.KeyE), s.Camera.HeightLowerKey)
	// untouched camera fields keep their defaults
	assert.Equal(t, camera.DefaultConfig().Height, s.Camera.Height)
}

func TestParseEmptyDocument(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestParseZeroFallsBackToDefaults(t *testing.T) {
	s, err := Parse([]byte("window:\n  title: \"\"\n  width: 0\nengine:\n  tick_rate: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, s.Window.Title)
	assert.Equal(t, DefaultWidth, s.Window.Width)
	assert.Equal(t, DefaultTickRate, s.Engine.TickRate)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"invalid camera", "camera:\n  zoom:\n    min: 10\n    max: 1\n", camera.ErrInvalidConfig},
		{"unknown binding", "camera:\n  rotate_key: KeyNope\n", input.ErrUnknownBinding},
		{"negative width", "window:\n  width: -5\n", nil},
		{"negative workers", "engine:\n  compute_workers: -1\n", nil},
		{"malformed yaml", "window: [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrNoPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "topdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Window.Title)
}

func TestNewWatcherRequiresPath(t *testing.T) {
	_, err := NewWatcher("")
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	assert.True(t, filepath.IsAbs(w.Path()))

	require.NoError(t, os.WriteFile(path, []byte("camera:\n  follow: false\n"), 0o644))
	select {
	case s := <-w.Updates:
		assert.False(t, s.Camera.Follow)
	case err := <-w.Errors:
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("camera:\n  zoom_enabled: true\n  zoom:\n    min: 9\n    max: 2\n"), 0o644))
	select {
	case err := <-w.Errors:
		assert.ErrorIs(t, err, camera.ErrInvalidConfig)
	case s := <-w.Updates:
		t.Fatalf("invalid settings delivered: %+v", s)
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	w, err := NewWatcher(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644))
	select {
	case s := <-w.Updates:
		t.Fatalf("unexpected reload: %+v", s)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	w, err := NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	_, open := <-w.Updates
	assert.False(t, open)
}
