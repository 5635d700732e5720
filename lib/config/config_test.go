package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glquad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Hello World", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "u_Colour", cfg.Shader.Uniform)
	assert.Nil(t, cfg.Api)
}

func TestParseFull(t *testing.T) {
	path := writeConfig(t, `
window:
  title: quad
  width: 800
  height: 600
  gl_major: 3
  gl_minor: 3
  vsync: false
  resizable: true
backend: soft
headless_frames: 10
shader:
  path: shaders/quad.shader
  uniform: u_Tint
  hot_reload: true
colour:
  start: "#102030ff"
  increment: 0.01
  loop: true
api:
  bind: 127.0.0.1:8000
  enable_profiler: true
log_level: debug
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, &WindowCfg{Title: "quad", Width: 800, Height: 600, GLMajor: 3, GLMinor: 3, Resizable: true}, cfg.Window)
	assert.Equal(t, SoftBackend, cfg.Backend)
	assert.Equal(t, 10, cfg.HeadlessFrames)
	assert.Equal(t, CfgPath(filepath.Join(filepath.Dir(path), "shaders/quad.shader")), cfg.Shader.Path)
	assert.Equal(t, "u_Tint", cfg.Shader.Uniform)
	assert.True(t, cfg.Shader.HotReload)
	assert.Equal(t, &ColourCfg{Start: "#102030ff", Increment: 0.01, Loop: true}, cfg.Colour)
	assert.Equal(t, &ApiCfg{Bind: "127.0.0.1:8000", EnableProfiler: true}, cfg.Api)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  title: only a title
colour:
  increment: 0
`)

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "only a title", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 4, cfg.Window.GLMajor)
	assert.Equal(t, OpenGLBackend, cfg.Backend)
	assert.Equal(t, CfgPath(""), cfg.Shader.Path)
	assert.Equal(t, "#000000ff", cfg.Colour.Start)
	assert.Equal(t, float32(0.0001), cfg.Colour.Increment)
}

func TestAbsoluteShaderPathIsKept(t *testing.T) {
	path := writeConfig(t, "shader:\n  path: /opt/glquad/quad.shader\n")

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, CfgPath("/opt/glquad/quad.shader"), cfg.Shader.Path)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"backend":     "backend: vulkan\n",
		"window size": "window:\n  width: -1\n  height: 10\n",
		"legacy gl":   "window:\n  gl_major: 2\n  gl_minor: 1\n",
		"frames":      "backend: soft\nheadless_frames: -1\n",
		"colour":      "colour:\n  start: red\n",
		"increment":   "colour:\n  increment: 2\n",
		"hot reload":  "shader:\n  hot_reload: true\n",
		"api bind":    "api:\n  enable_profiler: true\n",
		"log level":   "log_level: chatty\n",
		"not yaml":    "window: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, `"Hello World" 640x480, OpenGL 4.1 core`)
	assert.Contains(t, s, "Backend: opengl")
}
