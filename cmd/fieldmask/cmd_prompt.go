package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-fieldmask/pkg/formfile"
	"github.com/goliatone/go-fieldmask/pkg/model"
	"github.com/goliatone/go-fieldmask/pkg/openapi"
	"github.com/goliatone/go-fieldmask/pkg/renderers/tui"
)

type promptOptions struct {
	formPath    string
	openAPIPath string
	operation   string
	output      string
}

func (a *app) promptCmd() *cobra.Command {
	var opts promptOptions
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill a form in the terminal with masked answers",
		Long: `Prompt loads a form from a form file (--form) or an OpenAPI operation
(--openapi with --operation), asks for each field and prints the answers.
Masked fields are formatted as they are entered and re-asked while
incomplete.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output == "" {
				opts.output = a.cfg.Output
			}
			format, err := tui.ParseOutputFormat(opts.output)
			if err != nil {
				return err
			}
			form, err := a.loadForm(cmd.Context(), opts)
			if err != nil {
				return err
			}

			renderer := tui.New(
				tui.WithRegistry(a.registry),
				tui.WithOutputFormat(format),
				tui.WithLogger(a.logger),
			)
			out, err := renderer.Render(cmd.Context(), form, nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.formPath, "form", "", "form definition file (JSON or YAML)")
	flags.StringVar(&opts.openAPIPath, "openapi", "", "OpenAPI document")
	flags.StringVar(&opts.operation, "operation", "", "form or operation id")
	flags.StringVar(&opts.output, "output", "", "output format: json, form or pretty")
	cmd.MarkFlagsMutuallyExclusive("form", "openapi")
	cmd.MarkFlagsOneRequired("form", "openapi")
	return cmd
}

func (a *app) loadForm(ctx context.Context, opts promptOptions) (model.FormModel, error) {
	var (
		form model.FormModel
		err  error
	)
	switch {
	case opts.openAPIPath != "":
		if opts.operation == "" {
			return model.FormModel{}, errors.New("prompt: --operation is required with --openapi")
		}
		form, err = openapi.LoadForm(ctx, openapi.NewLoader(), openapi.SourceFromFile(opts.openAPIPath), opts.operation, a.registry)
	default:
		form, err = loadFormFile(opts.formPath, opts.operation)
		if err == nil {
			err = model.Apply(&form, a.registry)
		}
	}
	if err != nil {
		return model.FormModel{}, err
	}
	a.logger.Debug("form loaded", zap.String("operation", form.OperationID), zap.Int("fields", len(form.Fields)))
	return form, nil
}

// loadFormFile returns the form named id, or the only form in the file when
// id is empty.
func loadFormFile(path, id string) (model.FormModel, error) {
	store, err := formfile.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return model.FormModel{}, err
	}
	if id == "" {
		ids := store.IDs()
		if len(ids) != 1 {
			return model.FormModel{}, fmt.Errorf("prompt: %s defines %d forms, pick one with --operation", path, len(ids))
		}
		id = ids[0]
	}
	form, ok := store.Form(id)
	if !ok {
		return model.FormModel{}, fmt.Errorf("prompt: form %q not found in %s (have %v)", id, path, store.IDs())
	}
	return form, nil
}
