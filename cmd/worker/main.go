package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker synthesize|route|dot|import <building file> [args]")
	}

	var err error
	switch os.Args[1] {
	case "synthesize":
		err = RunSynthesize(os.Args[2:])
	case "route":
		err = RunRoute(os.Args[2:])
	case "dot":
		err = RunDOT(os.Args[2:])
	case "import":
		err = RunImport(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatal(err)
	}
}
