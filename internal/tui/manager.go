// Package tui implements the interactive model manager.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/seanGSISG/ollama-tray/internal/daemon/ops"
	"github.com/seanGSISG/ollama-tray/internal/models"
)

// Run starts the model manager over the given runner and blocks until exit.
func Run(runner *ops.Runner) error {
	m := newModel(runner)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type uiState int

const (
	stateList uiState = iota
	statePullPrompt
	stateConfirmDelete
	stateBusy
)

// Messages
type modelsLoadedMsg struct {
	list   []models.ModelSummary
	diskMB float64
}

type progressLineMsg string

type operationDoneMsg models.OperationResult

// Model is the bubbletea model for the manager screen.
type Model struct {
	runner *ops.Runner

	state   uiState
	list    []models.ModelSummary
	diskMB  float64
	cursor  int
	status  string
	pending string

	input textinput.Model
	spin  spinner.Model

	progress []string
	lines    chan string
	handle   *ops.Handle
}

func newModel(runner *ops.Runner) *Model {
	input := textinput.New()
	input.Placeholder = "model name (e.g. llama2:latest)"
	input.CharLimit = 128

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Model{
		runner: runner,
		input:  input,
		spin:   spin,
		status: "loading models...",
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadModels(), m.spin.Tick)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case modelsLoadedMsg:
		m.list = msg.list
		m.diskMB = msg.diskMB
		if m.cursor >= len(m.list) {
			m.cursor = max(0, len(m.list)-1)
		}
		if m.state == stateList {
			m.status = fmt.Sprintf("%d model(s), %.1f MB on disk", len(m.list), m.diskMB)
		}
		return m, nil

	case progressLineMsg:
		m.progress = append(m.progress, string(msg))
		if len(m.progress) > 8 {
			m.progress = m.progress[len(m.progress)-8:]
		}
		return m, m.waitOperation()

	case operationDoneMsg:
		m.state = stateList
		m.status = msg.FinalMessage
		m.progress = nil
		m.handle = nil
		m.lines = nil
		return m, m.loadModels()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case statePullPrompt:
		switch msg.Type {
		case tea.KeyEnter:
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.state = stateList
				return m, nil
			}
			return m, m.startPull(name)
		case tea.KeyEsc:
			m.state = stateList
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case stateConfirmDelete:
		switch msg.String() {
		case "y", "Y":
			return m, m.startDelete(m.pending)
		default:
			m.state = stateList
			m.status = "delete cancelled"
			return m, nil
		}

	case stateBusy:
		// Operations run to completion; only quit is honored.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	// stateList
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "r":
		m.status = "refreshing..."
		return m, m.loadModels()
	case "p":
		m.state = statePullPrompt
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case "d":
		if len(m.list) == 0 {
			return m, nil
		}
		m.pending = displayName(m.list[m.cursor])
		m.state = stateConfirmDelete
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ollama Models"))
	b.WriteString("\n\n")

	if len(m.list) == 0 {
		b.WriteString(dimStyle.Render("  no models\n"))
	}
	for i, mdl := range m.list {
		cursor := "  "
		style := itemStyle
		if i == m.cursor && m.state == stateList {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("%-40s %10s", displayName(mdl), humanize.Bytes(uint64(mdl.SizeBytes)))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state {
	case statePullPrompt:
		b.WriteString("Pull model: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case stateConfirmDelete:
		b.WriteString(warnStyle.Render(fmt.Sprintf("Delete %s? (y/N)", m.pending)))
		b.WriteString("\n")
	case stateBusy:
		b.WriteString(m.spin.View())
		b.WriteString(" " + m.status + "\n")
		for _, line := range m.progress {
			b.WriteString(dimStyle.Render("  " + line))
			b.WriteString("\n")
		}
	default:
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("p pull · d delete · r refresh · q quit"))
	return b.String()
}

func (m *Model) loadModels() tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		return modelsLoadedMsg{
			list:   runner.ListModels(),
			diskMB: runner.DiskUsageMB(),
		}
	}
}

func (m *Model) startPull(name string) tea.Cmd {
	m.state = stateBusy
	m.status = "pulling " + name
	m.progress = nil

	lines := make(chan string, 64)
	m.lines = lines
	runner := m.runner
	m.handle = ops.Spawn(func() models.OperationResult {
		defer close(lines)
		return runner.PullModel(name, func(line string) {
			lines <- line
		})
	})

	return tea.Batch(m.spin.Tick, m.waitOperation())
}

func (m *Model) startDelete(name string) tea.Cmd {
	m.state = stateBusy
	m.status = "deleting " + name
	m.progress = nil

	m.lines = nil
	runner := m.runner
	m.handle = ops.Spawn(func() models.OperationResult {
		return runner.RemoveModel(name)
	})

	return tea.Batch(m.spin.Tick, m.waitOperation())
}

// waitOperation delivers the next progress line, or the terminal result once
// the line stream is exhausted.
func (m *Model) waitOperation() tea.Cmd {
	lines := m.lines
	handle := m.handle
	return func() tea.Msg {
		if lines != nil {
			if line, ok := <-lines; ok {
				return progressLineMsg(line)
			}
		}
		return operationDoneMsg(handle.Wait())
	}
}

func displayName(m models.ModelSummary) string {
	if len(m.Tags) > 0 {
		return m.Name + ":" + m.Tags[0]
	}
	return m.Name
}
