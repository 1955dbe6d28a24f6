package main

import (
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/lu-zhengda/macsweep/internal/cli"
)

func main() {
	dir := "./docs/man"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}
	header := &doc.GenManHeader{
		Title:   "MACSWEEP",
		Section: "1",
		Source:  "macsweep",
	}
	if err := doc.GenManTree(cli.RootCmd(), header, dir); err != nil {
		log.Fatal(err)
	}
}
