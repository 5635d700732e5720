package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/glquad/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

type Backend string

const (
	OpenGLBackend Backend = "opengl"
	SoftBackend   Backend = "soft"
)

type Config struct {
	Window         *WindowCfg
	Backend        Backend
	HeadlessFrames int `yaml:"headless_frames"`
	Shader         *ShaderCfg
	Colour         *ColourCfg
	Api            *ApiCfg
	LogLevel       string `yaml:"log_level"`
}

type WindowCfg struct {
	Title     string
	Width     int
	Height    int
	GLMajor   int  `yaml:"gl_major"`
	GLMinor   int  `yaml:"gl_minor"`
	VSync     bool `yaml:"vsync"`
	Resizable bool
}

type ShaderCfg struct {
	// Path to a shader asset; empty selects the built-in one
	Path      CfgPath
	Uniform   string
	HotReload bool `yaml:"hot_reload"`
}

type ColourCfg struct {
	Start     string
	Increment float32
	Loop      bool
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default is the configuration used when no file is given: the 640x480
// "Hello World" window with the built-in shader.
func Default() *Config {
	return &Config{
		Window: &WindowCfg{
			Title:   "Hello World",
			Width:   640,
			Height:  480,
			GLMajor: 4,
			GLMinor: 1,
			VSync:   true,
		},
		Backend: OpenGLBackend,
		Shader: &ShaderCfg{
			Uniform: "u_Colour",
		},
		Colour: &ColourCfg{
			Start:     "#000000ff",
			Increment: 0.0001,
		},
		LogLevel: "info",
	}
}

// ApplyDefaults fills in missing sections and zero values from Default.
// A zero colour increment also falls back to the default.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Window == nil {
		c.Window = d.Window
	} else {
		if c.Window.Title == "" {
			c.Window.Title = d.Window.Title
		}
		if c.Window.Width == 0 && c.Window.Height == 0 {
			c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
		}
		if c.Window.GLMajor == 0 {
			c.Window.GLMajor, c.Window.GLMinor = d.Window.GLMajor, d.Window.GLMinor
		}
	}
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.Shader == nil {
		c.Shader = d.Shader
	} else if c.Shader.Uniform == "" {
		c.Shader.Uniform = d.Shader.Uniform
	}
	if c.Colour == nil {
		c.Colour = d.Colour
	} else {
		if c.Colour.Start == "" {
			c.Colour.Start = d.Colour.Start
		}
		if c.Colour.Increment == 0 {
			c.Colour.Increment = d.Colour.Increment
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Parse reads a config file, fills in defaults and validates it.
func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	m := yaml.NewDecoder(f)
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window == nil {
		return fmt.Errorf("window section must be specified")
	}
	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}

	switch c.Backend {
	case OpenGLBackend:
	case SoftBackend:
		if c.HeadlessFrames < 0 {
			return fmt.Errorf("headless_frames must be nonnegative")
		}
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}

	if c.Shader == nil {
		return fmt.Errorf("shader section must be specified")
	}
	err = c.Shader.Validate()
	if err != nil {
		return fmt.Errorf("shader is invalid: %w", err)
	}

	if c.Colour == nil {
		return fmt.Errorf("colour section must be specified")
	}
	err = c.Colour.Validate()
	if err != nil {
		return fmt.Errorf("colour is invalid: %w", err)
	}

	if c.Api != nil {
		err = c.Api.Validate()
		if err != nil {
			return fmt.Errorf("api is invalid: %w", err)
		}
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level converts log_level into a slog level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return l, fmt.Errorf("invalid log_level %s: %w", c.LogLevel, err)
	}
	return l, nil
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.GLMajor < 3 || (w.GLMajor == 3 && w.GLMinor < 3) {
		return fmt.Errorf("OpenGL %d.%d has no core profile, at least 3.3 is needed", w.GLMajor, w.GLMinor)
	}
	return nil
}

func (s *ShaderCfg) Validate() error {
	if s.Uniform == "" {
		return fmt.Errorf("uniform name must be specified")
	}
	if s.HotReload && s.Path == "" {
		return fmt.Errorf("cannot enable hot_reload for the built-in shader")
	}
	return nil
}

func (c *ColourCfg) Validate() error {
	if !utils.ColourValidate(c.Start) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.Start)
	}
	if c.Increment < 0 || c.Increment > 1 {
		return fmt.Errorf("increment must be within [0, 1], got %g", c.Increment)
	}
	return nil
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %q %dx%d, OpenGL %d.%d core\n",
		c.Window.Title, c.Window.Width, c.Window.Height, c.Window.GLMajor, c.Window.GLMinor))

	b.WriteString(fmt.Sprintf("\nBackend: %s\n", c.Backend))

	b.WriteString("\nShader:\n")
	if c.Shader.Path == "" {
		b.WriteString("  (built-in)\n")
	} else {
		b.WriteString(fmt.Sprintf("  %s\n", c.Shader.Path))
	}
	b.WriteString(fmt.Sprintf("  uniform %s\n", c.Shader.Uniform))

	b.WriteString(fmt.Sprintf("\nColour: %s +%g/frame\n", c.Colour.Start, c.Colour.Increment))

	if c.Api != nil {
		b.WriteString(fmt.Sprintf("\nApi: %s\n", c.Api.Bind))
	}

	return b.String()
}
