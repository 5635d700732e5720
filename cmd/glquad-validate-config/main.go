package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/rendering/shaders"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <config file>", os.Args[0])
	}
	cfg, err := config.Parse(os.Args[1])
	if err != nil {
		fmt.Printf("Config invalid: %s\n", err)
		os.Exit(1)
	}

	src, err := shaders.Load(string(cfg.Shader.Path))
	if err != nil {
		fmt.Printf("Shader invalid: %s\n", err)
		os.Exit(1)
	}
	if src.Vertex == "" || src.Fragment == "" {
		fmt.Printf("Shader invalid: both a vertex and a fragment stage are required\n")
		os.Exit(1)
	}

	fmt.Print("Config valid!\n\n")

	fmt.Print(cfg)
}
