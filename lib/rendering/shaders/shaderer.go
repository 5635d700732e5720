package shaders

import (
	"bytes"
	"embed"
	"fmt"
)

//go:embed *.shader
var assetDir embed.FS

// DefaultAsset is the name of the built-in shader asset: a pass-through
// vertex stage and a fragment stage filling with u_Colour.
const DefaultAsset = "basic.shader"

// Load reads a shader asset from filename, or the built-in asset when
// filename is empty.
func Load(filename string) (ProgramSource, error) {
	if filename == "" {
		return LoadEmbedded(DefaultAsset)
	}
	return ParseShaderFile(filename)
}

func LoadEmbedded(name string) (ProgramSource, error) {
	b, err := assetDir.ReadFile(name)
	if err != nil {
		return ProgramSource{}, fmt.Errorf("no built-in shader %s: %w", name, err)
	}
	return ParseShader(bytes.NewReader(b))
}

// AssetNames lists the built-in shader assets.
func AssetNames() []string {
	var names []string
	entries, err := assetDir.ReadDir(".")
	if err != nil {
		return nil
	}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
