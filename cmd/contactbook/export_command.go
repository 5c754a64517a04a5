package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contactbook/internal/book"
	"contactbook/internal/config"
	"contactbook/internal/fileutil"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all contacts as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported export format %q (use json or yaml)", format)
			}

			return ctx.withBook(cmd.Context(), func(_ *config.Config, b *book.Book) error {
				records := b.Directory().Contacts()

				var (
					data []byte
					err  error
				)
				if format == "yaml" {
					data, err = encodeYAML(records)
				} else {
					data, err = encodeJSON(records)
				}
				if err != nil {
					return fmt.Errorf("encode %s: %w", format, err)
				}

				if strings.TrimSpace(output) == "" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				target, err := config.ExpandPath(output)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if err := fileutil.WriteFileAtomic(target, data, 0o600); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d contacts to %s\n", len(records), target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
