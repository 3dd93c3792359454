package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Amr-9/crat/pkg/secret"
	"github.com/Amr-9/crat/pkg/sink"
)

func newDecryptCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Recover an encrypted private key or mnemonic",
		Long: `Decrypt pasted blobs interactively, or every encrypted block of a result
file written by gen. Passwords missing from the file are prompted for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := secret.New()
			if file == "" {
				return console.DecryptInteractive(codec)
			}

			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer fh.Close()

			parsed, err := sink.ParseFile(fh)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			return console.DecryptFile(codec, parsed)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Result file to decrypt")
	return cmd
}
