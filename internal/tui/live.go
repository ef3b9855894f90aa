// Package tui renders a live view of a benchmark suite while it runs. The
// runner pushes Snapshot values; the driving goroutine sends a ResultMsg
// per finished scenario and a DoneMsg at the end.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arrowpeak/docfusiondb-bench/internal/runner"
	"github.com/arrowpeak/docfusiondb-bench/internal/tui/styles"
)

// ResultMsg carries one finished scenario's summary.
type ResultMsg runner.Result

// DoneMsg signals that the whole suite has settled.
type DoneMsg struct {
	Err error
}

type Model struct {
	TargetURL string
	Scenarios int

	snapshot runner.Snapshot
	progress progress.Model
	results  []runner.Result
	done     bool
	err      error

	width int
}

func NewModel(targetURL string, scenarios int) Model {
	return Model{
		TargetURL: targetURL,
		Scenarios: scenarios,
		progress:  progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runner.Snapshot:
		m.snapshot = msg
		pct := 0.0
		if msg.Total > 0 {
			pct = float64(msg.Completed) / float64(msg.Total)
		}
		return m, m.progress.SetPercent(pct)

	case ResultMsg:
		m.results = append(m.results, runner.Result(msg))
		return m, m.progress.SetPercent(0)

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit

	case progress.FrameMsg:
		prog, cmd := m.progress.Update(msg)
		m.progress = prog.(progress.Model)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w > 0 {
			m.progress.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) View() string {
	s := strings.Builder{}

	s.WriteString(styles.Title.Render("🦀 DocFusionDB Benchmark"))
	s.WriteString("\n")
	s.WriteString(styles.Subtle.Render("Target: " + m.TargetURL))
	s.WriteString("\n\n")

	// Completed scenarios
	for _, r := range m.results {
		line := fmt.Sprintf("✔ %-26s %8.1f rps  avg %7.2fms  p95 %7.2fms  p99 %7.2fms  %5.1f%% ok",
			r.Operation, r.RPS, r.AvgLatencyMs, r.P95LatencyMs, r.P99LatencyMs, r.SuccessRate*100)
		if r.SuccessRate < 1 {
			s.WriteString(styles.Bad.Render(line))
		} else {
			s.WriteString(styles.Good.Render(line))
		}
		s.WriteString("\n")
	}

	// Current scenario
	if !m.done && m.snapshot.Operation != "" {
		cur := fmt.Sprintf("%s  (%d/%d requests, %d in flight)\n%s\nOK: %d  Err: %d  p95: %.1fms  p99: %.1fms",
			m.snapshot.Operation,
			m.snapshot.Completed, m.snapshot.Total, m.snapshot.Inflight,
			m.progress.View(),
			m.snapshot.Success, m.snapshot.Fail,
			m.snapshot.P95Ms, m.snapshot.P99Ms,
		)
		s.WriteString("\n")
		s.WriteString(styles.Box.Render(cur))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(styles.Subtle.Render(fmt.Sprintf("%d/%d scenarios · press q to abort", len(m.results), m.Scenarios)))
	s.WriteString("\n")

	return s.String()
}

// Results returns the scenario summaries collected so far, for printing
// after the program exits the alt screen.
func (m Model) Results() []runner.Result {
	return m.results
}

// Err returns the suite error, if the run failed.
func (m Model) Err() error {
	return m.err
}
