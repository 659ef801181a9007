package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/honyakun/localdict/internal/tokenizer"
)

func newTokenizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <text>...",
		Short: "Split text into tokens and print their offsets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("text required")
			}

			for _, token := range tokenizer.Tokenize(text) {
				fmt.Printf("%4d %4d  %s\n", token.Start, token.End, token.Text)
			}
			return nil
		},
	}
}
