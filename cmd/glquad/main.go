package main

import (
	"log"
	"os"
	"runtime"

	"github.com/fosdem/glquad/lib/app"
	"github.com/fosdem/glquad/lib/config"
	glqlog "github.com/fosdem/glquad/lib/log"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	cfg := config.Default()
	if len(os.Args) > 2 {
		log.Fatalf("Usage: %s [config file]", os.Args[0])
	}
	if len(os.Args) == 2 {
		var err error
		cfg, err = config.Parse(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
	}

	level, err := cfg.Level()
	if err != nil {
		log.Fatal(err)
	}
	glqlog.Setup(level)

	err = app.Run(cfg)
	if err != nil {
		log.Fatalf("glquad: %s", err)
	}
}
