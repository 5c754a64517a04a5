package main

import (
	"strings"

	"github.com/spf13/cobra"

	"contactbook/internal/api"
	"contactbook/internal/book"
	"contactbook/internal/config"
	"contactbook/internal/contact"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only JSON view of the address book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Snapshot and release the lock so other commands keep working.
			var records []*contact.Record
			if err := ctx.withBook(cmd.Context(), func(_ *config.Config, b *book.Book) error {
				records = b.Directory().Contacts()
				return nil
			}); err != nil {
				return err
			}

			addr := cfg.API.Bind
			if strings.TrimSpace(bind) != "" {
				addr = strings.TrimSpace(bind)
			}
			srv := api.NewServer(records, api.Options{
				Order:  book.ShortNameOrder(cfg),
				Token:  cfg.API.Token,
				Logger: ctx.log(),
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override api.bind")
	return cmd
}
