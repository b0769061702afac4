package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

func (a *app) watchCmd() *cobra.Command {
	var sanitize bool
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Log the masks found in HTML pages as they are created or saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("sanitize") {
				sanitize = a.cfg.Sanitize
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, args[0], sanitize)
		},
	}
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "sanitize markup before parsing")
	return cmd
}

func (a *app) watch(ctx context.Context, dir string, sanitize bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	a.logger.Info("watching pages", zap.String("dir", dir))
	return a.watchEvents(ctx, watcher.Events, watcher.Errors, sanitize)
}

// watchEvents reports every HTML page created or written until ctx ends or
// the event channel closes.
func (a *app) watchEvents(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, sanitize bool) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !isPage(event.Name) || (!event.Has(fsnotify.Create) && !event.Has(fsnotify.Write)) {
				continue
			}
			a.report(event.Name, sanitize)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (a *app) report(path string, sanitize bool) {
	doc, b, err := a.analyze(path, sanitize)
	if err != nil {
		a.logger.Warn("page skipped", zap.String("file", path), zap.Error(err))
		return
	}
	for _, input := range doc.Inputs() {
		binding, ok := b.Lookup(input)
		if !ok {
			continue
		}
		a.logger.Info("field masked",
			zap.String("file", path),
			zap.String("name", input.Attr(matcher.AttrName)),
			zap.String("id", input.Attr(matcher.AttrID)),
			zap.String("kind", string(binding.Kind)),
			zap.String("binding", binding.ID),
		)
	}
	a.logger.Debug("page scanned", zap.String("file", path), zap.Int("bound", b.Len()))
}

func isPage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}
