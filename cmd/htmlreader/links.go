package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsrosen/htmlreader/internal/parser"
	"github.com/dsrosen/htmlreader/internal/query"
)

func newLinksCmd(log *zap.SugaredLogger) *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Parse a document and print every A/AREA href",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := src.read(cmd.Context())
			if err != nil {
				return err
			}

			doc, err := parser.New(parser.WithLogger(log)).Parse(string(data))
			if err != nil {
				return err
			}

			for _, link := range query.Links(doc) {
				href := link.Attribute("HREF")
				if href == nil {
					continue
				}
				fmt.Println(href.Value())
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}
