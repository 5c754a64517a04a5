package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contactbook/internal/api"
	"contactbook/internal/book"
	"contactbook/internal/config"
	"contactbook/internal/contact"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id-or-prefix>",
		Short: "Show every field of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBook(cmd.Context(), func(cfg *config.Config, b *book.Book) error {
				r, err := b.Lookup(args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.FromRecord(r, book.ShortNameOrder(cfg)))
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, renderContact(b.ShortName(r), r, shouldColorize(out)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func renderContact(title string, r *contact.Record, colorize bool) string {
	var b strings.Builder
	for _, line := range renderSectionHeader(title, colorize) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-10s %s\n", "id:", r.ID)
	for _, f := range r.FilledFields() {
		for i, v := range r.Values(f) {
			label := ""
			if i == 0 {
				label = f.String() + ":"
			}
			fmt.Fprintf(&b, "  %-10s %s\n", label, strings.ReplaceAll(v, "\n", "\n             "))
		}
	}
	return b.String()
}
