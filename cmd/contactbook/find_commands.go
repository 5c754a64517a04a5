package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"contactbook/internal/api"
	"contactbook/internal/book"
	"contactbook/internal/config"
)

func newFindCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "find --<field> VALUE ...",
		Short: "Show the best matching contact",
		Args:  cobra.NoArgs,
	}
	fields := bindFieldFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		query, err := fields.record()
		if err != nil {
			return err
		}
		return ctx.withBook(cmd.Context(), func(cfg *config.Config, b *book.Book) error {
			match, ok := b.Directory().FindBestDuplicate(query)
			if asJSON {
				if !ok {
					return writeJSON(cmd, nil)
				}
				return writeJSON(cmd, api.DuplicateMatch{Score: match.Score, Contact: api.FromRecord(match.Record, book.ShortNameOrder(cfg))})
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "No matching contact")
				return nil
			}
			fmt.Fprintf(out, "Best match (score %d)\n", match.Score)
			fmt.Fprint(out, renderContact(b.ShortName(match.Record), match.Record, shouldColorize(out)))
			return nil
		})
	}
	return cmd
}

func newDuplicatesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var all bool

	cmd := &cobra.Command{
		Use:   "duplicates --<field> VALUE ...",
		Short: "Score every contact against the given values",
		Args:  cobra.NoArgs,
	}
	fields := bindFieldFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&all, "all", false, "Include contacts scoring zero")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		query, err := fields.record()
		if err != nil {
			return err
		}
		return ctx.withBook(cmd.Context(), func(cfg *config.Config, b *book.Book) error {
			matches := b.Directory().FindDuplicates(query)
			if !all {
				kept := matches[:0]
				for _, m := range matches {
					if m.Score > 0 {
						kept = append(kept, m)
					}
				}
				matches = kept
			}

			if asJSON {
				resp := api.DuplicatesResponse{Matches: make([]api.DuplicateMatch, 0, len(matches))}
				for _, m := range matches {
					resp.Matches = append(resp.Matches, api.DuplicateMatch{Score: m.Score, Contact: api.FromRecord(m.Record, book.ShortNameOrder(cfg))})
				}
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No candidates")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{strconv.Itoa(m.Score), shortID(m.Record.ID), b.ShortName(m.Record)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Score", "ID", "Name"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		})
	}
	return cmd
}
