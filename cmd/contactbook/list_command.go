package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"contactbook/internal/api"
	"contactbook/internal/book"
	"contactbook/internal/config"
	"contactbook/internal/contact"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var fieldName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List contacts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *contact.Field
			if name := strings.TrimSpace(fieldName); name != "" {
				f, err := contact.ParseField(name)
				if err != nil {
					return err
				}
				filter = &f
			}

			return ctx.withBook(cmd.Context(), func(cfg *config.Config, b *book.Book) error {
				records := b.Directory().Contacts()
				if filter != nil {
					records = b.Directory().ContactsWith(*filter)
				}

				if asJSON {
					resp := api.ContactListResponse{Contacts: make([]api.Contact, 0, len(records))}
					for _, r := range records {
						resp.Contacts = append(resp.Contacts, api.FromRecord(r, book.ShortNameOrder(cfg)))
					}
					return writeJSON(cmd, resp)
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No contacts")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for i, r := range records {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						shortID(r.ID),
						b.ShortName(r),
						strconv.Itoa(len(r.FilledFields())),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "ID", "Name", "Fields"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fieldName, "field", "", "Only list contacts with this field filled")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

