package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/g4d-go/engine/display_mesh"
	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-verbose] <command> [flags]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  hypercube  write the tesseract model file (and optionally its demo scene)\n")
	fmt.Fprintf(os.Stderr, "  inspect    read, validate and upload a model file into a host mesh\n")
	fmt.Fprintf(os.Stderr, "  uniforms   build a YAML scene and print each object's model-view uniforms\n")
	fmt.Fprintf(os.Stderr, "  frames     run the interactive demo loop headless over scripted input\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run() error {
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		return fmt.Errorf("command required")
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()
	display_mesh.SetLogger(logger.Named("mesh"))

	switch args[0] {
	case "hypercube":
		return runHypercube(logger, args[1:])
	case "inspect":
		return runInspect(logger, args[1:])
	case "uniforms":
		return runUniforms(logger, args[1:])
	case "frames":
		return runFrames(logger, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "g4d: %v\n", err)
		os.Exit(1)
	}
}
