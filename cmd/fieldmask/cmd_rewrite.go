package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-fieldmask/pkg/binder"
	"github.com/goliatone/go-fieldmask/pkg/dom"
	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

type rewriteOptions struct {
	write    bool
	outDir   string
	sanitize bool
}

func (a *app) rewriteCmd() *cobra.Command {
	var opts rewriteOptions
	cmd := &cobra.Command{
		Use:   "rewrite <file.html>...",
		Short: "Format pre-filled values and annotate masked inputs in HTML pages",
		Long: `Rewrite parses each page, binds every input the matcher recognises, formats
its current value and adds data-mask and maxlength attributes.

Pages are printed to stdout unless --write or --out is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("sanitize") {
				opts.sanitize = a.cfg.Sanitize
			}
			return a.rewrite(cmd, args, opts)
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&opts.write, "write", "w", false, "write results back to the source files")
	flags.StringVarP(&opts.outDir, "out", "o", "", "write results into this directory")
	flags.BoolVar(&opts.sanitize, "sanitize", false, "sanitize markup before parsing")
	return cmd
}

func (a *app) rewrite(cmd *cobra.Command, paths []string, opts rewriteOptions) error {
	if opts.outDir != "" && !opts.write {
		if err := checkOutputNames(paths); err != nil {
			return err
		}
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("rewrite: %w", err)
		}
	}

	results := make([][]byte, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for idx, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, bound, err := a.rewriteFile(path, opts.sanitize)
			if err != nil {
				return err
			}
			a.logger.Info("page rewritten", zap.String("file", path), zap.Int("bound", bound))

			switch {
			case opts.write:
				return writeInPlace(path, out)
			case opts.outDir != "":
				return os.WriteFile(filepath.Join(opts.outDir, filepath.Base(path)), out, 0o644)
			default:
				results[idx] = out
				return nil
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.write || opts.outDir != "" {
		return nil
	}
	return writeAll(cmd.OutOrStdout(), results)
}

// analyze parses one page and binds its inputs with a fresh binder.
func (a *app) analyze(path string, sanitize bool) (*dom.Document, *binder.Binder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("rewrite: %w", err)
	}
	defer file.Close()

	parse := dom.Parse
	if sanitize {
		parse = dom.ParseSanitized
	}
	doc, err := parse(file)
	if err != nil {
		return nil, nil, fmt.Errorf("rewrite %s: %w", path, err)
	}

	b := binder.New(binder.WithLogger(a.logger))
	m := matcher.New(b, matcher.WithRegistry(a.registry), matcher.WithLogger(a.logger))
	m.Scan(doc.Root())
	return doc, b, nil
}

func (a *app) rewriteFile(path string, sanitize bool) ([]byte, int, error) {
	doc, b, err := a.analyze(path, sanitize)
	if err != nil {
		return nil, 0, err
	}
	bound := doc.Annotate(b)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, 0, fmt.Errorf("rewrite %s: %w", path, err)
	}
	return buf.Bytes(), bound, nil
}

// checkOutputNames rejects inputs that would land on the same file under
// --out.
func checkOutputNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if previous, ok := seen[name]; ok {
			return fmt.Errorf("rewrite: %s and %s would both be written to %s", previous, path, name)
		}
		seen[name] = path
	}
	return nil
}

func writeInPlace(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, info.Mode().Perm())
}

func writeAll(out io.Writer, pages [][]byte) error {
	for _, page := range pages {
		if _, err := out.Write(page); err != nil {
			return err
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
	}
	return nil
}
