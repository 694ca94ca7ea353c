// Package main writes the ebay-seller-metrics CLI reference as markdown
// or man pages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/ebay-seller-metrics/cmd/ebay-seller-metrics/cmd"
)

func main() {
	dir := flag.String("output", "docs/cli", "directory to write into")
	format := flag.String("format", "markdown", "markdown or man")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o750); err != nil {
		log.Fatalf("creating %s: %v", *dir, err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	var err error
	switch *format {
	case "markdown":
		err = doc.GenMarkdownTree(root, *dir)
	case "man":
		err = doc.GenManTree(root, &doc.GenManHeader{
			Title:   "EBAY-SELLER-METRICS",
			Section: "1",
			Source:  "ebay-seller-metrics " + cmd.Version,
		}, *dir)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("generating %s docs: %v", *format, err)
	}

	fmt.Printf("wrote %s docs to %s/\n", *format, *dir)
}
