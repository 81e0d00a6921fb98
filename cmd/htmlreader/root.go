package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsrosen/htmlreader/internal/fetch"
)

// source holds the input-acquisition flags shared by every subcommand: read
// a local file, or fetch a URL, but not both.
type source struct {
	file string
	url  string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.file, "file", "", "read input from a local file")
	cmd.Flags().StringVar(&s.url, "url", "", "fetch input from a URL")
}

func (s *source) read(ctx context.Context) ([]byte, error) {
	switch {
	case s.file != "" && s.url != "":
		return nil, fmt.Errorf("--file and --url are mutually exclusive")
	case s.file != "":
		return fetch.File(s.file)
	case s.url != "":
		return fetch.URL(ctx, s.url)
	default:
		return nil, fmt.Errorf("one of --file or --url is required")
	}
}

func newRootCmd(log *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:   "htmlreader",
		Short: "Parse, tokenize, and query HTML documents",
	}
	root.AddCommand(newParseCmd(log))
	root.AddCommand(newTokenizeCmd(log))
	root.AddCommand(newLinksCmd(log))
	root.AddCommand(newFetchCmd(log))
	return root
}
