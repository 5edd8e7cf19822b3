package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgext/pkg/errors"
	"github.com/matzehuels/svgext/pkg/svg"
)

// iconCommand creates the icon command for inlining a single icon.
func (c *CLI) iconCommand() *cobra.Command {
	var (
		class  string
		output string
		opts   svg.Options
	)

	cmd := &cobra.Command{
		Use:   "icon [identifier]",
		Short: "Print the rewritten markup of one icon",
		Long: `Print the rewritten markup of one icon.

The identifier is either a bare icon name, looked up in the configured icon
path (theme://dist/icons/ by default), a file or logical path such as
theme://icons/check.svg, or literal <svg> markup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateIdentifier(args[0]); err != nil {
				return err
			}
			return c.runIcon(cmd.Context(), cmd.OutOrStdout(), args[0], class, opts, output)
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "classes merged into the root element (default from config)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "id attribute of the root element")
	cmd.Flags().StringVar(&opts.Title, "title", "", "accessible title")
	cmd.Flags().StringVar(&opts.PreserveAspectRatio, "aspect", svg.DefaultPreserveAspectRatio, "preserveAspectRatio value")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func (c *CLI) runIcon(ctx context.Context, w io.Writer, identifier, class string, opts svg.Options, output string) error {
	ext, _, err := c.newExtension()
	if err != nil {
		return err
	}
	out, err := ext.SVG(ctx, identifier, class, opts)
	if err != nil {
		return err
	}
	if out == "" {
		return errors.New(errors.ErrCodeNotFound, "icon %q produced no markup", shorten(identifier))
	}
	return writeOutput(w, output, out)
}

// spriteCommand creates the sprite command for assembling a sprite sheet.
func (c *CLI) spriteCommand() *cobra.Command {
	var (
		aspect string
		output string
	)

	cmd := &cobra.Command{
		Use:   "sprite [identifier...]",
		Short: "Combine icons into one hidden <svg> of <symbol>s",
		Long: `Combine icons into one hidden <svg> of <symbol>s.

Each icon becomes <symbol id="icon-NAME">; reference them with 'svgext use'.
Icons that cannot be resolved are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				if err := errors.ValidateIdentifier(a); err != nil {
					return err
				}
			}
			ext, _, err := c.newExtension()
			if err != nil {
				return err
			}
			out, err := ext.Sprite(cmd.Context(), args, svg.Options{PreserveAspectRatio: aspect})
			if err != nil {
				return err
			}
			if out == "" {
				return errors.New(errors.ErrCodeNotFound, "none of the %d icons produced a symbol", len(args))
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	cmd.Flags().StringVar(&aspect, "aspect", svg.DefaultPreserveAspectRatio, "preserveAspectRatio of every symbol")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

// useCommand creates the use command printing a sprite reference.
func (c *CLI) useCommand() *cobra.Command {
	var class, title string

	cmd := &cobra.Command{
		Use:   "use [identifier]",
		Short: "Print an <svg><use/></svg> reference to a sprite symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := svg.ParseIdentifier(args[0]).SymbolID()
			if err := errors.ValidateSymbolID(id); err != nil {
				return err
			}
			ext, _, err := c.newExtension()
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), "", ext.Use(args[0], class, title))
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "class attribute (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "accessible title")

	return cmd
}

// writeOutput prints markup to w, or to path when set.
func writeOutput(w io.Writer, path, markup string) error {
	if path == "" {
		_, err := fmt.Fprintln(w, markup)
		return err
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(markup+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// shorten trims long identifiers, typically literal markup, for messages.
func shorten(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
