package shaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stage identifies one of the two programmable stages in a shader asset.
type Stage int

const (
	NoStage Stage = iota - 1
	VertexStage
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "none"
}

const marker = "#shader"

// ProgramSource holds the two stage sources read from one asset.
type ProgramSource struct {
	Vertex   string
	Fragment string
}

// ParseShader splits a shader asset into its stages. A line containing
// "#shader" switches the stage that following lines are appended to: to
// vertex if it also mentions "vertex", else to fragment if it mentions
// "fragment", otherwise the current stage is kept. Marker lines are not part
// of either source and lines before the first marker are dropped.
func ParseShader(r io.Reader) (ProgramSource, error) {
	var stages [2]strings.Builder
	stage := NoStage

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, marker) {
			if strings.Contains(line, "vertex") {
				stage = VertexStage
			} else if strings.Contains(line, "fragment") {
				stage = FragmentStage
			}
			continue
		}
		if stage != NoStage {
			stages[stage].WriteString(line)
			stages[stage].WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return ProgramSource{}, fmt.Errorf("could not read shader source: %w", err)
	}

	return ProgramSource{
		Vertex:   stages[VertexStage].String(),
		Fragment: stages[FragmentStage].String(),
	}, nil
}

func ParseShaderFile(filename string) (ProgramSource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return ProgramSource{}, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	src, err := ParseShader(f)
	if err != nil {
		return ProgramSource{}, fmt.Errorf("%s: %w", filename, err)
	}
	return src, nil
}
