package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contactbook/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check paths, store and API readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("contactbook", colorize) {
				fmt.Fprintln(out, line)
			}
			failed := 0
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failed++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Short names", statusInfo, cfg.Display.ShortNameOrder+" order", colorize))
			if failed > 0 {
				return errors.New("one or more readiness checks failed")
			}
			return nil
		},
	}
}
