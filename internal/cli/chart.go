package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vedanga/jyotish/pkg/astro"
	"github.com/vedanga/jyotish/pkg/pipeline"
)

// chartOpts holds the command-line flags for the chart command.
type chartOpts struct {
	moment  momentFlags
	rahu    bool   // eight-karaka scheme
	asJSON  bool   // machine-readable output
	output  string // output file path (stdout if empty)
	noCache bool
}

// newChartCmd creates the chart command.
// It computes sidereal placements for all nine bodies, decomposes each into
// sign, nakshatra, pada, and house, and ranks the chara karakas.
func newChartCmd() *cobra.Command {
	var opts chartOpts

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute placements and karakas for a birth moment",
		Long: `Compute the sidereal chart for a birth moment.

Each body's longitude is decomposed into sign, degree within sign,
nakshatra, pada, and house counted from the ascendant. The seven classical
planets are ranked into chara karakas; pass --rahu for the eight-karaka
scheme.

Examples:
  jyotish chart -d 240390 -t 14:15 --lat 19.07 --lon 72.88
  jyotish chart -d 1990-03-24 --json`,
	}

	cfg, cfgErr := loadConfig()
	if cfgErr != nil {
		cfg = defaultConfig()
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		return runChart(cmd, cfg, &opts)
	}

	opts.moment.register(cmd, cfg)
	cmd.Flags().BoolVar(&opts.rahu, "rahu", false, "include Rahu (eight-karaka scheme)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit JSON instead of a table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the ephemeris cache")

	return cmd
}

func runChart(cmd *cobra.Command, cfg *Config, opts *chartOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	pipeOpts, err := opts.moment.options()
	if err != nil {
		return err
	}
	pipeOpts.IncludeRahu = opts.rahu
	pipeOpts.Logger = logger

	runner, err := newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	set, err := runner.Positions(ctx, pipeOpts)
	if err != nil {
		return err
	}
	chart, err := runner.BuildChart(ctx, set, pipeOpts)
	if err != nil {
		return err
	}
	prog.done("Computed chart")

	if opts.asJSON {
		return writeJSON(opts.output, struct {
			JulianDay float64        `json:"julian_day"`
			Chart     pipeline.Chart `json:"chart"`
		}{set.JulianDay, chart})
	}

	printChart(set, chart)
	return nil
}

// printChart renders the chart as a readable table.
func printChart(set *pipeline.PositionSet, chart pipeline.Chart) {
	printNewline()
	fmt.Println(StyleTitle.Render("Chart"))
	printKeyValue("Julian Day", fmt.Sprintf("%.5f", set.JulianDay))
	printKeyValue("Ascendant", fmtLongitude(chart.Ascendant))
	printNewline()

	fmt.Println(StyleDim.Render(fmt.Sprintf("  %-8s %-12s %-9s %-14s %-5s %-5s",
		"Body", "Sign", "Degree", "Nakshatra", "Pada", "House")))
	for _, p := range chart.Placements {
		retro := "  "
		if p.Retrograde {
			retro = styleRetro.Render(iconRetro) + " "
		}
		fmt.Printf("  %-8s %-12s %-9s %-14s %-5d %-5d %s\n",
			p.Body, p.SignName, fmtDegree(p.Degree), p.NakshatraName, p.Pada, p.House, retro)
	}

	printNewline()
	fmt.Println(StyleTitle.Render("Karakas"))
	for _, k := range chart.Karakas.Karakas {
		fmt.Printf("  %-14s %-8s %s\n",
			k.Role.Name, k.Body, StyleDim.Render(fmtLongitude(k.Longitude)))
	}
	printNewline()
}

// fmtDegree formats a degree within a sign as D°MM'.
func fmtDegree(deg float64) string {
	d := int(deg)
	m := int((deg - float64(d)) * 60)
	return fmt.Sprintf("%d°%02d'", d, m)
}

// fmtLongitude formats an absolute longitude with its sign name.
func fmtLongitude(lon float64) string {
	l := astro.Normalize(lon)
	sign := astro.SignIndex(l)
	return fmt.Sprintf("%s %s", fmtDegree(astro.DegreeInSign(l)), astro.SignNames[sign])
}

// writeJSON marshals v with indentation to path, or stdout if path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
