// Command htmlreader is the CLI surface over the parser, tokenizer, and
// query packages: read or fetch a document, then dump its tree, its token
// stream, or its links.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := newRootCmd(log.Sugar()).Execute(); err != nil {
		os.Exit(1)
	}
}
