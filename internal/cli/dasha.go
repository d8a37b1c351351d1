package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedanga/jyotish/pkg/astro/dasha"
	"github.com/vedanga/jyotish/pkg/errors"
	"github.com/vedanga/jyotish/pkg/pipeline"
	"github.com/vedanga/jyotish/pkg/render/dashatree"
)

// dashaOpts holds the command-line flags for the dasha command.
type dashaOpts struct {
	moment  momentFlags
	system  string // "vimshottari" or "chara"
	depth   int    // nesting depth, 1..4
	tree    string // render the tree to this file (.svg, .png, or .dot)
	asJSON  bool
	output  string
	noCache bool
}

// newDashaCmd creates the dasha command.
func newDashaCmd() *cobra.Command {
	var opts dashaOpts

	cmd := &cobra.Command{
		Use:   "dasha",
		Short: "Compute Vimshottari or Chara dasha period trees",
		Long: `Compute a dasha period tree for a birth moment.

Vimshottari allots planetary periods over a 120-year cycle seeded by the
Moon's nakshatra. Chara allots sign periods seeded by the Atmakaraka's
sign, with direction and length determined by sign-counting.

The active chain at the birth moment is marked in the listing. Use --tree
to render the full tree as SVG, PNG, or Graphviz DOT.

Examples:
  jyotish dasha -d 240390 -t 14:15
  jyotish dasha -d 240390 --system chara --depth 3
  jyotish dasha -d 240390 --tree periods.svg`,
	}

	cfg, cfgErr := loadConfig()
	if cfgErr != nil {
		cfg = defaultConfig()
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		return runDasha(cmd, cfg, &opts)
	}

	opts.moment.register(cmd, cfg)
	cmd.Flags().StringVarP(&opts.system, "system", "s", pipeline.SystemVimshottari, "dasha system (vimshottari or chara)")
	cmd.Flags().IntVar(&opts.depth, "depth", cfg.Dasha.Depth, "nesting depth (1=mahadasha only, up to 4)")
	cmd.Flags().StringVar(&opts.tree, "tree", "", "render the tree to a file (.svg, .png, or .dot)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit JSON instead of a listing")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the ephemeris cache")

	return cmd
}

func runDasha(cmd *cobra.Command, cfg *Config, opts *dashaOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	pipeOpts, err := opts.moment.options()
	if err != nil {
		return err
	}
	pipeOpts.System = opts.system
	pipeOpts.Depth = opts.depth
	pipeOpts.Logger = logger
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	set, err := runner.Positions(ctx, pipeOpts)
	if err != nil {
		return err
	}

	var tree []dasha.Period
	switch pipeOpts.System {
	case pipeline.SystemChara:
		chart, err := runner.BuildChart(ctx, set, pipeOpts)
		if err != nil {
			return err
		}
		tree, err = runner.Chara(ctx, set, chart, pipeOpts)
		if err != nil {
			return err
		}
	default:
		tree, err = runner.Vimshottari(ctx, set, pipeOpts)
		if err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Computed %s tree", pipeOpts.System))

	if opts.tree != "" {
		if err := renderTree(tree, pipeOpts.System, opts.tree); err != nil {
			return err
		}
	}

	if opts.asJSON {
		return writeJSON(opts.output, tree)
	}

	printDashaTree(tree, set.Moment.UTC())
	return nil
}

// renderTree writes the tree diagram, choosing the format by extension.
func renderTree(tree []dasha.Period, system, path string) error {
	title := "Vimshottari dasha"
	if system == pipeline.SystemChara {
		title = "Chara dasha"
	}
	dot := dashatree.ToDOT(tree, dashatree.Options{Detailed: true, Title: title})

	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		data, err = dashatree.RenderSVG(dot)
	case ".png":
		data, err = dashatree.RenderPNG(dot)
	case ".dot":
		data = []byte(dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported tree format: %q (use .svg, .png, or .dot)", ext)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// printDashaTree lists the top-level periods with the active chain marked.
func printDashaTree(tree []dasha.Period, at time.Time) {
	chain, _ := dasha.At(tree, at)
	active := make(map[string]bool, len(chain))
	for _, p := range chain {
		active[periodKey(p)] = true
	}

	printNewline()
	fmt.Println(StyleTitle.Render("Dasha periods"))
	printPeriods(tree, active, 0)
	printNewline()
}

// periodKey identifies a period uniquely within one tree.
func periodKey(p dasha.Period) string {
	return fmt.Sprintf("%d/%s/%d", p.Level, p.Ruler, p.Start.Unix())
}

func printPeriods(periods []dasha.Period, active map[string]bool, indent int) {
	pad := strings.Repeat("  ", indent+1)
	for _, p := range periods {
		marker := " "
		line := fmt.Sprintf("%-8s %s %s %s  %s", p.Ruler,
			p.Start.Format("2006-01-02"), iconArrow, p.End.Format("2006-01-02"),
			StyleDim.Render(fmt.Sprintf("%.2fy", p.Years)))
		if active[periodKey(p)] {
			marker = StyleHighlight.Render(iconActive)
			line = StyleValue.Render(line)
		} else {
			line = StyleDim.Render(line)
		}
		fmt.Println(pad + marker + " " + line)
		printPeriods(p.Sub, active, indent+1)
	}
}
