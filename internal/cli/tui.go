package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vedanga/jyotish/pkg/astro/panchang"
	"github.com/vedanga/jyotish/pkg/pipeline"
)

// =============================================================================
// PanchangModel - Interactive day-by-day almanac browser
// =============================================================================

// dayResult carries one computed day back into the model.
type dayResult struct {
	date time.Time
	day  panchang.Day
	err  error
}

// PanchangModel is the bubbletea model for the panchang browser.
// Left/right arrows move one day, shift by a week with h/l, q quits.
type PanchangModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options

	cursor  time.Time // civil date being shown, at noon
	day     panchang.Day
	loaded  bool
	loading bool
	err     error
}

// newPanchangModel creates a browser starting at the date in opts.
func newPanchangModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) PanchangModel {
	start := time.Date(opts.Year, time.Month(opts.Month), opts.Day, 12, 0, 0, 0, time.UTC)
	return PanchangModel{ctx: ctx, runner: runner, opts: opts, cursor: start}
}

func (m PanchangModel) Init() tea.Cmd {
	return m.compute(m.cursor)
}

// compute returns a command that runs the pipeline for the given date.
func (m PanchangModel) compute(date time.Time) tea.Cmd {
	opts := m.opts
	opts.Day, opts.Month, opts.Year = date.Day(), int(date.Month()), date.Year()
	return func() tea.Msg {
		set, err := m.runner.Positions(m.ctx, opts)
		if err != nil {
			return dayResult{date: date, err: err}
		}
		day, err := m.runner.Panchang(m.ctx, set)
		return dayResult{date: date, day: day, err: err}
	}
}

func (m PanchangModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "j":
			return m.shift(-1)
		case "right", "k":
			return m.shift(1)
		case "h":
			return m.shift(-7)
		case "l":
			return m.shift(7)
		}
	case dayResult:
		// Stale results from an overtaken fetch are dropped.
		if !msg.date.Equal(m.cursor) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.day = msg.day
			m.loaded = true
		}
	}
	return m, nil
}

// shift moves the cursor by days and kicks off a fresh computation.
func (m PanchangModel) shift(days int) (tea.Model, tea.Cmd) {
	m.cursor = m.cursor.AddDate(0, 0, days)
	m.loading = true
	m.err = nil
	return m, m.compute(m.cursor)
}

func (m PanchangModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Panchang " + m.cursor.Format("Mon 2006-01-02")))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ day  h/l week  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleDanger.Render("error: " + m.err.Error()))
	case m.loading || !m.loaded:
		b.WriteString(StyleDim.Render("computing..."))
	default:
		writeRow(&b, "Tithi", fmt.Sprintf("%s (%s paksha)", m.day.TithiName, m.day.Paksha))
		writeRow(&b, "Nakshatra", m.day.NakshatraName)
		writeRow(&b, "Yoga", m.day.YogaName)
		writeRow(&b, "Karana", m.day.KaranaName)
		if !m.day.Sunrise.IsZero() {
			writeRow(&b, "Sunrise", m.day.Sunrise.Format("15:04"))
			writeRow(&b, "Sunset", m.day.Sunset.Format("15:04"))
		}
		writeRow(&b, "Score", fmt.Sprintf("%d/100", m.day.Score))
		b.WriteString("  " + StyleDim.Render(fmt.Sprintf("%-11s", "Verdict")) + " " +
			verdictStyle(m.day.Verdict).Render(m.day.Verdict) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func writeRow(b *strings.Builder, key, value string) {
	b.WriteString("  " + StyleDim.Render(fmt.Sprintf("%-11s", key)) + " " + StyleValue.Render(value) + "\n")
}
