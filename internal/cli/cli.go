// Package cli implements the svgext command-line interface.
//
// svgext is a small host for the icon template functions: it inlines single
// icons, assembles sprites, renders whole templates and watches them for
// changes. Every command reads the same configuration (TOML file plus
// SVGEXT_* environment variables) and resolves icons through a theme
// locator rooted at --root.
package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgext/pkg/buildinfo"
	"github.com/matzehuels/svgext/pkg/cache"
	"github.com/matzehuels/svgext/pkg/config"
	"github.com/matzehuels/svgext/pkg/extension"
	"github.com/matzehuels/svgext/pkg/locator"
	"github.com/matzehuels/svgext/pkg/observability"
	"github.com/matzehuels/svgext/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "svgext"

	// configFile is the file looked up in the user config directory.
	configFile = "config.toml"

	// defaultTheme is the theme mounted at theme:// when --theme is not set.
	defaultTheme = "default"
)

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags.
	configPath string
	root       string
	theme      string
	verbose    bool
	noMemo     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		root:   ".",
		theme:  defaultTheme,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "svgext inlines and sprites SVG icons in templates",
		Long:         `svgext renders html/template pages with the svg, svgSprite and sprite helpers, and inlines or sprites icons from the command line.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			registerLogHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/svgext/config.toml when present)")
	root.PersistentFlags().StringVar(&c.root, "root", c.root, "site root containing themes/ and user/")
	root.PersistentFlags().StringVar(&c.theme, "theme", c.theme, "theme mounted at theme://")
	root.PersistentFlags().BoolVar(&c.noMemo, "no-memo", false, "re-read and rewrite every icon instead of memoizing")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log memo and render events")

	// Register all subcommands
	root.AddCommand(c.iconCommand())
	root.AddCommand(c.spriteCommand())
	root.AddCommand(c.useCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// loadSettings reads the effective settings: the config file (explicit or
// the user default when it exists), then environment overrides.
func (c *CLI) loadSettings() (config.Settings, string, error) {
	path := c.configPath
	if path == "" {
		if p, err := defaultConfigPath(); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		return config.Settings{}, path, err
	}
	return s, path, nil
}

// newLocator creates the theme locator for the current flags.
func (c *CLI) newLocator() *locator.Streams {
	return locator.ForTheme(c.root, c.theme)
}

// newExtension creates an extension from the effective settings.
func (c *CLI) newExtension() (*extension.Extension, config.Settings, error) {
	settings, path, err := c.loadSettings()
	if err != nil {
		return nil, settings, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	var memo cache.Cache
	if c.noMemo {
		memo = cache.NewNullCache()
	}
	return extension.New(settings, c.newLocator(), memo, c.Logger), settings, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, config.Settings, error) {
	ext, settings, err := c.newExtension()
	if err != nil {
		return nil, settings, err
	}
	return pipeline.NewRunner(ext, c.Logger), settings, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/svgext/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("no home directory")
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the user config file path.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// =============================================================================
// Hooks
// =============================================================================

func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetIconHooks(h)
	observability.SetCacheHooks(h)
	observability.SetRenderHooks(h)
}
