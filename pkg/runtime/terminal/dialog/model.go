// Package dialog is the interactive report options dialog for the terminal.
package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
	"github.com/de-tools/solar-atlas/pkg/services/report"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	doneStyle     = lipgloss.NewStyle().Margin(1, 2)
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	checkMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
)

// GenerateFunc produces and delivers a document, returning where it went.
type GenerateFunc func(ctx context.Context, opts domain.ReportOptions) (*domain.GeneratedDocument, string, error)

type item struct {
	label  string
	option report.OptionName
}

var items = []item{
	{label: "Include Summary", option: report.OptionSummary},
	{label: "Include Project Details", option: report.OptionDetails},
	{label: "Include Charts", option: report.OptionCharts},
	{label: "Generate"},
	{label: "Cancel"},
}

const (
	generateIndex = 3
	cancelIndex   = 4
)

type generatedMsg struct {
	doc      *domain.GeneratedDocument
	location string
	err      error
}

type Model struct {
	ctx      context.Context
	dialog   *report.Dialog
	generate GenerateFunc
	spinner  spinner.Model
	cursor   int
	location string
}

func New(ctx context.Context, generate GenerateFunc) *Model {
	s := spinner.New()
	s.Style = spinnerStyle

	return &Model{
		ctx:      ctx,
		dialog:   report.NewDialog(),
		generate: generate,
		spinner:  s,
	}
}

// Dialog exposes the underlying state machine.
func (m *Model) Dialog() *report.Dialog {
	return m.dialog
}

// Location is where the last generated document was delivered.
func (m *Model) Location() string {
	return m.location
}

func (m *Model) Init() tea.Cmd {
	return nil
}

//nolint:ireturn // Third-party.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case generatedMsg:
		if msg.err != nil {
			m.dialog.Fail(msg.err)
			return m, nil
		}
		m.location = msg.location
		m.dialog.Succeed()
		return m, tea.Sequence(
			tea.Printf("%s %s", checkMark, msg.doc.Filename),
			tea.Quit,
		)

	case spinner.TickMsg:
		if m.dialog.State() != report.DialogGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	generating := m.dialog.State() == report.DialogGenerating

	switch msg.String() {
	case "ctrl+c":
		// Generation cannot be interrupted; the result message still arrives.
		if !generating {
			return m, tea.Quit
		}
	case "esc", "q":
		if m.dialog.Cancel() == nil {
			return m, tea.Quit
		}
	case "up", "k":
		if !generating && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if !generating && m.cursor < len(items)-1 {
			m.cursor++
		}
	case "x":
		m.dialog.DismissError()
	case " ", "enter":
		return m.activate()
	}
	return m, nil
}

func (m *Model) activate() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case generateIndex:
		opts, err := m.dialog.Begin()
		if err != nil {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.run(opts))
	case cancelIndex:
		if m.dialog.Cancel() == nil {
			return m, tea.Quit
		}
	default:
		_ = m.dialog.Toggle(items[m.cursor].option)
	}
	return m, nil
}

func (m *Model) run(opts domain.ReportOptions) tea.Cmd {
	return func() tea.Msg {
		doc, location, err := m.generate(m.ctx, opts)
		return generatedMsg{doc: doc, location: location, err: err}
	}
}

func (m *Model) View() string {
	if m.dialog.State() == report.DialogDone {
		return doneStyle.Render("Report saved to " + m.location + "\n")
	}
	if !m.dialog.IsOpen() {
		return ""
	}

	generating := m.dialog.State() == report.DialogGenerating
	opts := m.dialog.Options()
	checked := map[report.OptionName]bool{
		report.OptionSummary: opts.IncludeSummary,
		report.OptionDetails: opts.IncludeDetails,
		report.OptionCharts:  opts.IncludeCharts,
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Generate Report"))
	sb.WriteString("\n")

	for i, it := range items {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}

		line := it.label
		if it.option != "" {
			box := "[ ]"
			if checked[it.option] {
				box = "[x]"
			}
			line = box + " " + it.label
		} else if i == generateIndex && generating {
			line = m.spinner.View() + " Generating..."
		}

		if generating {
			line = disabledStyle.Render(line)
		}
		sb.WriteString(pointer + line + "\n")
	}

	if n := m.dialog.Notification(); n.Open {
		sb.WriteString("\n" + errStyle.Render(n.Message) + "\n")
		if err := m.dialog.Err(); err != nil {
			sb.WriteString(disabledStyle.Render(fmt.Sprintf("(%v) press x to dismiss", err)) + "\n")
		}
	}

	return sb.String()
}
