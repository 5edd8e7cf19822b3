package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgext/pkg/pipeline"
)

// renderOpts holds the command-line flags shared by render and watch.
type renderOpts struct {
	partials string // glob of partial templates
	dataFile string // JSON or TOML file passed as template dot
	output   string // output file; stdout when empty
}

// renderCommand creates the render command for executing a template.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render an html/template page with the icon helpers",
		Long: `Render an html/template page with the icon helpers.

Templates can call:

  {{ svg "check" "icon" (svgOptions "title" "Done") }}
  {{ svgSprite "check" "close" }}
  {{ sprite "check" "icon" "Done" }}

The memo table is cleared at the start of every render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := c.newRunner()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), runner, args[0], opts)
		},
	}

	addRenderFlags(cmd, &opts)
	return cmd
}

func addRenderFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVarP(&opts.partials, "partials", "p", "", "glob of partial templates (e.g. 'templates/*.part.html')")
	cmd.Flags().StringVarP(&opts.dataFile, "data", "d", "", "JSON or TOML file used as template data")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
}

// runRender performs one render cycle and writes the result.
func (c *CLI) runRender(ctx context.Context, w io.Writer, runner *pipeline.Runner, template string, opts renderOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	popts := pipeline.Options{
		Template: template,
		Partials: opts.partials,
	}
	if opts.dataFile != "" {
		data, err := pipeline.LoadData(opts.dataFile)
		if err != nil {
			return err
		}
		popts.Data = data
	}

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return fmt.Errorf("render %s: %w", template, err)
	}

	if opts.output == "" {
		if _, err := w.Write(result.Output); err != nil {
			return err
		}
	} else if err := writeOutput(w, opts.output, string(result.Output)); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %s (%d bytes, %d memo hits, %d misses)", template, result.Stats.Bytes, result.Stats.Memo.Hits, result.Stats.Memo.Misses))
	return nil
}
