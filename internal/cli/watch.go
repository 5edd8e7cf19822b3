package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgext/pkg/pipeline"
)

// defaultDebounce coalesces the burst of events editors emit per save.
const defaultDebounce = 100 * time.Millisecond

// ignoreSuffixes are editor and OS artifacts that never trigger a render.
var ignoreSuffixes = []string{"~", ".swp", ".swx", ".tmp", ".DS_Store"}

// watchCommand creates the watch command for re-rendering on change.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts     renderOpts
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [template]",
		Short: "Re-render a template whenever it, its partials or the icons change",
		Long: `Re-render a template whenever it, its partials or the icons change.

The template directory, the partials directory and every directory the icon
path maps to are watched (not recursively). Each change starts a fresh render
cycle with an empty memo table. Stop with ctrl+c.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, settings, err := c.newRunner()
			if err != nil {
				return err
			}
			dirs := watchDirs(args[0], opts.partials, c.newLocator().Expand(settings.Path))
			return c.runWatch(cmd.Context(), cmd.OutOrStdout(), runner, args[0], opts, dirs, debounce)
		},
	}

	addRenderFlags(cmd, &opts)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before re-rendering")

	return cmd
}

// runWatch renders once and then after every relevant change until ctx is
// done. Render failures are logged and the watch continues.
func (c *CLI) runWatch(ctx context.Context, w io.Writer, runner *pipeline.Runner, template string, opts renderOpts, dirs []string, debounce time.Duration) error {
	logger := loggerFromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	watched := 0
	for _, d := range dirs {
		if err := fw.Add(d); err != nil {
			logger.Warn("cannot watch directory", "dir", d, "error", err)
			continue
		}
		watched++
	}

	render := func() {
		if err := c.runRender(ctx, w, runner, template, opts); err != nil {
			logger.Error("render failed", "error", err)
		}
	}
	render()
	printInfo("Watching %d directories (ctrl+c to stop)", watched)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(ev, opts.output) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			render()
		}
	}
}

// watchDirs lists the existing directories holding the template, the
// partials and the icons, without duplicates.
func watchDirs(template, partials string, iconDirs []string) []string {
	candidates := []string{filepath.Dir(template)}
	if partials != "" {
		candidates = append(candidates, globDir(partials))
	}
	candidates = append(candidates, iconDirs...)

	seen := make(map[string]bool, len(candidates))
	var dirs []string
	for _, d := range candidates {
		abs, err := filepath.Abs(d)
		if err != nil || seen[abs] {
			continue
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			continue
		}
		seen[abs] = true
		dirs = append(dirs, abs)
	}
	return dirs
}

// globDir returns the deepest directory of pattern without glob meta
// characters.
func globDir(pattern string) string {
	dir := filepath.Dir(pattern)
	for strings.ContainsAny(dir, "*?[") {
		dir = filepath.Dir(dir)
	}
	return dir
}

// relevantEvent reports whether ev should trigger a render. Chmod-only
// events, editor artifacts and writes to the render output are ignored.
func relevantEvent(ev fsnotify.Event, output string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".#") {
		return false
	}
	for _, s := range ignoreSuffixes {
		if strings.HasSuffix(base, s) {
			return false
		}
	}
	if output != "" {
		out, err1 := filepath.Abs(output)
		name, err2 := filepath.Abs(ev.Name)
		if err1 == nil && err2 == nil && out == name {
			return false
		}
	}
	return true
}
