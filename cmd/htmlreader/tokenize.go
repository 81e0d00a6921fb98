package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dsrosen/htmlreader/internal/token"
)

func newTokenizeCmd(log *zap.SugaredLogger) *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Run the standalone tokenizer and print the token stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := src.read(cmd.Context())
			if err != nil {
				return err
			}

			tz := token.New(string(data))
			for {
				tok, err := tz.Next()
				if err != nil {
					return err
				}
				if tok.Type == token.EOF {
					return nil
				}
				fmt.Printf("%v %q %v\n", tok.Type, tok.Value, tok.Attributes)
			}
		},
	}
	src.register(cmd)
	return cmd
}
