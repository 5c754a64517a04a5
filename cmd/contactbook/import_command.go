package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"contactbook/internal/book"
	"contactbook/internal/config"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import [dir]",
		Short: "Import every .vcf file from a directory (default paths.import_dir)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBook(cmd.Context(), func(cfg *config.Config, b *book.Book) error {
				dir := cfg.Paths.ImportDir
				if len(args) == 1 {
					expanded, err := config.ExpandPath(args[0])
					if err != nil {
						return fmt.Errorf("resolve import dir: %w", err)
					}
					dir = expanded
				}
				summary, err := b.ImportDir(cmd.Context(), dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards from %s: %d added, %d merged, %d skipped\n",
					summary.Total(), dir, summary.Added, summary.Merged, summary.Skipped)
				return nil
			})
		},
	}
}
