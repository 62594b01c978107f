package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"slidesearch/internal/domain"
)

// SearchPort is the TUI-facing subset of the query engine.
type SearchPort interface {
	Query(ctx context.Context, text string, topK int) ([]domain.SearchResult, error)
}

// Model is the Bubble Tea model for the interactive slide search.
type Model struct {
	service  SearchPort
	resolver domain.Resolver
	topK     int
	input    textinput.Model
	viewport viewport.Model
	results  []domain.SearchResult
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(service SearchPort, resolver domain.Resolver, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		resolver: resolver,
		topK:     topK,
		input:    ti,
		viewport: vp,
		status:   "Index ready. Type to search slides.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + query box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				res, err := m.service.Query(context.Background(), q, m.topK)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.results = nil
				} else {
					m.status = fmt.Sprintf("Top %d slides for %q", len(res), q)
					m.results = res
					m.cursor = 0
				}
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current results.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Slide Search")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	for i, r := range m.results {
		line := fmt.Sprintf("%d. %s — slide %d  score=%.3f", r.Rank, r.Record.Deck, r.Record.Slide+1, r.Score)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	sel := m.results[m.cursor]
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(sel.Record.Summary))
	if m.resolver != nil {
		if handle, err := m.resolver.Resolve(sel.Record); err == nil {
			b.WriteString("\n")
			b.WriteString(artifactStyle.Render(fmt.Sprintf("%s page %d", handle.Path, handle.Page)))
		}
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	artifactStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
