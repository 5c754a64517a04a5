package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contactbook/internal/book"
	"contactbook/internal/config"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("reset deletes all contacts; rerun with --yes to confirm")
			}
			return ctx.withBook(cmd.Context(), func(_ *config.Config, b *book.Book) error {
				removed := b.Directory().Len()
				backup, err := b.Reset(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Removed %d contacts\n", removed)
				if backup != "" {
					fmt.Fprintf(out, "Backup written to %s\n", backup)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm deletion")
	return cmd
}
