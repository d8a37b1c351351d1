package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vedanga/jyotish/pkg/astro/panchang"
)

// panchangOpts holds the command-line flags for the panchang command.
type panchangOpts struct {
	moment      momentFlags
	interactive bool
	asJSON      bool
	output      string
	noCache     bool
}

// newPanchangCmd creates the panchang command.
// Without --date it computes today's almanac; --interactive opens a
// day-by-day browser.
func newPanchangCmd() *cobra.Command {
	var opts panchangOpts

	cmd := &cobra.Command{
		Use:   "panchang",
		Short: "Compute the five limbs of the almanac for a day",
		Long: `Compute the panchang (tithi, nakshatra, yoga, karana, and the
rise/set vara boundary) for a civil day, with a muhurta quality score.

Examples:
  jyotish panchang
  jyotish panchang -d 15.08.2025 --lat 13.08 --lon 80.27
  jyotish panchang --interactive`,
	}

	cfg, cfgErr := loadConfig()
	if cfgErr != nil {
		cfg = defaultConfig()
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		return runPanchang(cmd, cfg, &opts)
	}

	opts.moment.register(cmd, cfg)
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse days interactively")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit JSON instead of a table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the ephemeris cache")

	return cmd
}

func runPanchang(cmd *cobra.Command, cfg *Config, opts *panchangOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	pipeOpts, err := opts.moment.options()
	if err != nil {
		return err
	}
	pipeOpts.Logger = logger

	runner, err := newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}

	if opts.interactive {
		model := newPanchangModel(ctx, runner, pipeOpts)
		p := tea.NewProgram(model)
		_, err := p.Run()
		return err
	}

	spin := newSpinner(ctx, "Computing panchang...")
	spin.Start()
	set, err := runner.Positions(ctx, pipeOpts)
	if err != nil {
		spin.Stop()
		if spin.Cancelled() {
			printError("Cancelled")
		}
		return err
	}
	day, err := runner.Panchang(ctx, set)
	spin.Stop()
	if err != nil {
		if spin.Cancelled() {
			printError("Cancelled")
		}
		return err
	}

	if opts.asJSON {
		return writeJSON(opts.output, day)
	}

	printPanchang(pipeOpts.Day, pipeOpts.Month, pipeOpts.Year, day)
	return nil
}

// printPanchang renders one day's almanac.
func printPanchang(d, m, y int, day panchang.Day) {
	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Panchang %04d-%02d-%02d", y, m, d)))
	printKeyValue("Tithi", fmt.Sprintf("%s (%s paksha)", day.TithiName, day.Paksha))
	printKeyValue("Nakshatra", day.NakshatraName)
	printKeyValue("Yoga", day.YogaName)
	printKeyValue("Karana", day.KaranaName)
	if !day.Sunrise.IsZero() {
		printKeyValue("Sunrise", day.Sunrise.Format("15:04 MST"))
		printKeyValue("Sunset", day.Sunset.Format("15:04 MST"))
	}
	printKeyValue("Score", fmt.Sprintf("%d/100", day.Score))
	printKeyValue("Verdict", verdictStyle(day.Verdict).Render(day.Verdict))
	printNewline()
}
