package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsrosen/htmlreader/internal/parser"
)

func newParseCmd(log *zap.SugaredLogger) *cobra.Command {
	var src source
	var full bool

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a document and print its tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := src.read(cmd.Context())
			if err != nil {
				return err
			}

			opts := []parser.Option{parser.WithLogger(log)}
			if full {
				opts = append(opts, parser.WithOptions(parser.FullOptions))
			}
			doc, err := parser.New(opts...).Parse(string(data))
			if err != nil {
				return err
			}

			fmt.Print(doc.ToString("  "))
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().BoolVar(&full, "full", false, "keep comment and doctype nodes")
	return cmd
}
