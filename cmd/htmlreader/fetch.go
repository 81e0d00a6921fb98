package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsrosen/htmlreader/internal/fetch"
)

func newFetchCmd(log *zap.SugaredLogger) *cobra.Command {
	var url, out string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a URL and save it to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Infow("fetching", "url", url)
			data, err := fetch.URL(cmd.Context(), url)
			if err != nil {
				log.Errorw("fetch failed", "url", url, "error", err)
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "URL to download")
	cmd.Flags().StringVar(&out, "out", "page.html", "output file path")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
