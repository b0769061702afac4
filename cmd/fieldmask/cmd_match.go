package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

func (a *app) matchCmd() *cobra.Command {
	var attrs matcher.Attributes
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Report the mask a field with the given attributes would receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, ok := a.registry.Resolve(attrs)
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "none")
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), kind)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&attrs.Name, "name", "", "name attribute")
	flags.StringVar(&attrs.ID, "id", "", "id attribute")
	flags.StringVar(&attrs.Placeholder, "placeholder", "", "placeholder attribute")
	flags.StringVar(&attrs.Type, "type", "", "type attribute")
	flags.StringVar(&attrs.Mask, "mask", "", "data-mask attribute")
	return cmd
}
