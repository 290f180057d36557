package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classgraph/pkg/errors"
	pkgio "github.com/matzehuels/classgraph/pkg/io"
	"github.com/matzehuels/classgraph/pkg/model"
	"github.com/matzehuels/classgraph/pkg/options"
	"github.com/matzehuels/classgraph/pkg/pipeline"
	"github.com/matzehuels/classgraph/pkg/source/java"
)

// genOpts holds the flags shared by the diagram, views and doc commands.
type genOpts struct {
	config    string // config file path
	model     string // JSON model instead of Java sources
	outputDir string // directory of the generated files ("d" option)
	output    string // output file name ("output" option), "-" for stdout
	formats   string // comma-separated image formats
	dot       string // external renderer executable
	noRender  bool   // write DOT files only
	noCache   bool   // bypass render and package-list caches
	refresh   bool   // refetch package lists
	view      string // named view to generate (views command)
}

func (o *genOpts) register(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "config file (default "+defaultConfigFile+" if present)")
	cmd.Flags().StringVarP(&o.model, "model", "m", "", "read a JSON class model instead of Java sources")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "d", "", "output directory")
	if withOutput {
		cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file name, - for stdout")
	}
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "image format(s): svg (default), png, jpg (comma-separated)")
	cmd.Flags().StringVar(&o.dot, "dot", "", "render with this Graphviz executable instead of the built-in engine")
	cmd.Flags().BoolVar(&o.noRender, "no-render", false, "write DOT files only")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "bypass the render and package-list caches")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "refetch package lists of link options")
}

const optionsHelp = `
Diagram options follow a double dash, written as in UMLGraph:

  classgraph diagram src/main/java -- -attributes -operations -hide 'java\..*'

Options from the [options] table of the config file apply first.`

// diagramCommand creates the command drawing one diagram of all classes.
func (c *CLI) diagramCommand() *cobra.Command {
	var opts genOpts
	cmd := &cobra.Command{
		Use:   "diagram [sources...] [-- options...]",
		Short: "Draw a class diagram of all classes",
		Long: `Draw one class diagram of every class found in the sources.

With the "view" or "views" option the named views are drawn instead.
` + optionsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.generate(cmd, args, &opts, func(ctx context.Context, g *pipeline.Generator) *pipeline.Result {
				return g.Run(ctx)
			})
		},
	}
	opts.register(cmd, true)
	return cmd
}

// viewsCommand creates the command drawing named views.
func (c *CLI) viewsCommand() *cobra.Command {
	var opts genOpts
	cmd := &cobra.Command{
		Use:   "views [sources...] [-- options...]",
		Short: "Draw the views declared with @view tags",
		Long: `Draw every class tagged @view as its own diagram, or only the one given with --name.
` + optionsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.generate(cmd, args, &opts, func(ctx context.Context, g *pipeline.Generator) *pipeline.Result {
				if opts.view != "" {
					g.Options.ViewName = opts.view
				} else {
					g.Options.FindViews = true
				}
				return g.Views(ctx)
			})
		},
	}
	opts.register(cmd, false)
	cmd.Flags().StringVarP(&opts.view, "name", "n", "", "draw only this view")
	return cmd
}

// docCommand creates the command adding diagrams to javadoc pages.
func (c *CLI) docCommand() *cobra.Command {
	var opts genOpts
	cmd := &cobra.Command{
		Use:   "doc [sources...] [-- options...]",
		Short: "Add package and class diagrams to generated javadoc",
		Long: `Draw a diagram of every package and a context diagram of every class into the
javadoc output directory and link them into package-summary.html and the class
pages found there. Missing pages are reported and skipped.
` + optionsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.generate(cmd, args, &opts, func(ctx context.Context, g *pipeline.Generator) *pipeline.Result {
				spinner := newSpinnerWithContext(ctx, "Drawing documentation diagrams...")
				spinner.Start()
				res := g.Docs(ctx, "")
				spinner.Stop()
				return res
			})
		},
	}
	opts.register(cmd, false)
	return cmd
}

// generate loads the model and options and runs one generator request.
func (c *CLI) generate(cmd *cobra.Command, args []string, opts *genOpts, run func(context.Context, *pipeline.Generator) *pipeline.Result) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(opts.config, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	sources, optArgs := splitArgs(cmd, args)

	opt, err := c.buildOptions(cfg, optArgs, opts)
	if err != nil {
		return err
	}
	formats := parseFormats(opts.formats)
	if len(formats) == 0 {
		formats = cfg.Formats
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if opt.OutputFileName == pipeline.StdoutName {
		uiOut = os.Stderr
	}

	if len(sources) == 0 {
		sources = cfg.Sources
	}
	modelPath := opts.model
	if modelPath == "" {
		modelPath = cfg.Model
	}
	prog := newProgress(c.Logger)
	u, err := c.load(ctx, sources, modelPath)
	if err != nil {
		return err
	}

	noCache := opts.noCache || cfg.NoCache
	g := pipeline.NewGenerator(u, opt, c.Logger)
	g.Formats = formats
	g.Links = c.newLinks(noCache, opts.refresh)
	if !opts.noRender {
		exe := opts.dot
		if exe == "" {
			exe = cfg.DotExecutable
		}
		g.Renderer = c.newRenderer(exe, noCache)
	}

	res := run(ctx, g)
	prog.done(fmt.Sprintf("Generated %d diagram(s)", len(res.Diagrams)))
	printResult(res)
	if err := ctx.Err(); err != nil {
		return err
	}
	return resultError(res)
}

// splitArgs separates source paths from the option tokens after "--".
func splitArgs(cmd *cobra.Command, args []string) (sources, optArgs []string) {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		return args[:dash], args[dash:]
	}
	return args, nil
}

// buildOptions applies config options, command-line options and flags in
// that order. Options that cannot be applied are logged and skipped.
func (c *CLI) buildOptions(cfg *config, optArgs []string, opts *genOpts) (*options.Options, error) {
	opt := options.New()
	lists := append(append([][]string{}, cfg.tokens...), options.ParseArgs(optArgs)...)
	for _, err := range opt.SetAll(lists) {
		c.Logger.Warn(errors.UserMessage(err))
	}
	dir := opts.outputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir != "" {
		opt.OutputDirectory = dir
	}
	if opts.output != "" {
		if err := errors.ValidateOutputName(opts.output, true); err != nil {
			return nil, err
		}
		opt.OutputFileName = opts.output
	}
	return opt, nil
}

// load reads the JSON model when one is given and the Java sources
// otherwise.
func (c *CLI) load(ctx context.Context, sources []string, modelPath string) (*model.Universe, error) {
	if modelPath != "" {
		return pipeline.Load(ctx, pkgio.Provider(modelPath), modelPath, c.Logger)
	}
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrCodeConfiguration,
			"no sources given; pass source directories or set sources in %s", defaultConfigFile)
	}
	return pipeline.Load(ctx, java.New(sources, c.Logger), strings.Join(sources, ","), c.Logger)
}

// printResult summarizes the diagrams of a request.
func printResult(res *pipeline.Result) {
	for _, d := range res.Diagrams {
		if d.Err != nil {
			printError("%s: %s", d.Name, errors.UserMessage(d.Err))
			continue
		}
		printSuccess("%s", d.Name)
		if d.Output != pipeline.StdoutName {
			printFile(d.Output)
		}
		for _, img := range d.Images {
			printFile(img)
		}
		printStats(d.Nodes, d.Relations, d.Duration)
	}
	var warnings, errs int
	for _, item := range res.Diagnostics.Items() {
		if item.Severity == errors.SeverityError {
			errs++
		} else {
			warnings++
		}
	}
	if warnings > 0 {
		printWarning("%d warning(s), run with --verbose for details", warnings)
	}
	if errs > 0 {
		printError("%d error(s)", errs)
	}
}

// resultError turns a failed request into the command error.
func resultError(res *pipeline.Result) error {
	failed := res.Failed()
	if res.OK && len(failed) == 0 {
		return nil
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d diagram(s) failed", len(failed), len(res.Diagrams))
	}
	return fmt.Errorf("generation finished with errors")
}
