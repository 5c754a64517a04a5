package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"contactbook/internal/book"
	"contactbook/internal/config"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var noMerge bool

	cmd := &cobra.Command{
		Use:   "add --name NAME [--telephone NUM ...]",
		Short: "Add a contact, merging it into a matching one unless --no-merge",
		Args:  cobra.NoArgs,
	}
	fields := bindFieldFlags(cmd)
	cmd.Flags().BoolVar(&noMerge, "no-merge", false, "Always append as a new contact")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		record, err := fields.record()
		if err != nil {
			return err
		}
		return ctx.withBook(cmd.Context(), func(_ *config.Config, b *book.Book) error {
			result, err := b.Add(cmd.Context(), record, !noMerge)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.Merged {
				fmt.Fprintf(out, "Merged into %s (%s, score %d)\n", shortID(result.Entry.ID), b.ShortName(result.Entry), result.Score)
				return nil
			}
			fmt.Fprintf(out, "Added %s (%s)\n", shortID(result.Entry.ID), b.ShortName(result.Entry))
			return nil
		})
	}
	return cmd
}
