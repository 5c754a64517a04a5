package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contactbook/internal/contact"
)

// fieldFlags binds one repeatable --<field> flag per schema field.
type fieldFlags struct {
	values map[contact.Field]*[]string
}

func bindFieldFlags(cmd *cobra.Command) *fieldFlags {
	ff := &fieldFlags{values: make(map[contact.Field]*[]string)}
	for _, f := range contact.Fields() {
		ff.values[f] = cmd.Flags().StringArray(f.String(), nil, fmt.Sprintf("%s value (repeatable)", f))
	}
	return ff
}

// record builds a record from the flags that were given. It fails when no
// field carries a non-blank value.
func (ff *fieldFlags) record() (*contact.Record, error) {
	values := make(map[string]any)
	for f, ptr := range ff.values {
		var kept []string
		for _, v := range *ptr {
			if strings.TrimSpace(v) != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			values[f.String()] = kept
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one field value is required (e.g. --name \"Ada Lovelace\")")
	}
	return contact.FromMap(values)
}
