package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldmask/pkg/mask"
)

func (a *app) formatCmd() *cobra.Command {
	kinds := make([]string, 0, len(mask.Kinds()))
	for _, kind := range mask.Kinds() {
		kinds = append(kinds, string(kind))
	}
	return &cobra.Command{
		Use:   "format <kind> [value...]",
		Short: "Format values with a mask",
		Long: fmt.Sprintf(`Format values with the named mask (%s).

Values are read one per line from stdin when none are given.`, strings.Join(kinds, ", ")),
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := mask.ParseKind(args[0])
			if err != nil {
				return err
			}
			return formatValues(cmd.OutOrStdout(), cmd.InOrStdin(), kind, args[1:])
		},
	}
}

func formatValues(out io.Writer, in io.Reader, kind mask.Kind, values []string) error {
	if len(values) > 0 {
		for _, value := range values {
			if _, err := fmt.Fprintln(out, kind.Format(value)); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(out, kind.Format(scanner.Text())); err != nil {
			return err
		}
	}
	return scanner.Err()
}
