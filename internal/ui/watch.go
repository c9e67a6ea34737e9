package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxEventLog is how many recent payload lines the monitor keeps.
const maxEventLog = 8

// Message types for async operations
type connectedMsg struct {
	client *StreamClient
}

type connectFailedMsg struct {
	err error
}

type streamEventMsg struct {
	event *StreamEvent
}

type streamClosedMsg struct {
	err error
}

// Reading is the latest decoded value for one sensor key.
type Reading struct {
	Key       string
	Value     any
	UpdatedAt time.Time
}

// watchKeyMap defines key bindings for the monitor screen
type watchKeyMap struct {
	Clear key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Clear, k.Quit}}
}

// WatchModel is the live monitor screen: latest reading per sensor key
// plus a short log of recent payloads.
type WatchModel struct {
	// Gateway connection
	GatewayName string
	StreamURL   string
	client      *StreamClient

	// Connection state
	Connecting bool
	Err        error

	// Latest readings, in first-seen key order
	readings map[string]*Reading
	order    []string

	// Keys updated by the most recent payload, for highlighting
	fresh map[string]bool

	// Recent payload log
	events        []string
	TotalPayloads int

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    watchKeyMap
}

// NewWatchModel creates a monitor connected to the given stream endpoint.
func NewWatchModel(gatewayName, streamURL string) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := watchKeyMap{
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	return WatchModel{
		GatewayName: gatewayName,
		StreamURL:   streamURL,
		Connecting:  true,
		readings:    make(map[string]*Reading),
		fresh:       make(map[string]bool),
		Spinner:     s,
		Help:        help.New(),
		Keys:        keys,
	}
}

// Init starts the spinner and the connection attempt.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, connectCmd(m.StreamURL))
}

// connectCmd dials the gateway stream in the background.
func connectCmd(streamURL string) tea.Cmd {
	return func() tea.Msg {
		client, err := Connect(streamURL)
		if err != nil {
			return connectFailedMsg{err: err}
		}
		return connectedMsg{client: client}
	}
}

// readEventCmd waits for the next decoded payload.
func readEventCmd(client *StreamClient) tea.Cmd {
	return func() tea.Msg {
		event, err := client.ReadEvent()
		if err != nil {
			return streamClosedMsg{err: err}
		}
		return streamEventMsg{event: event}
	}
}

// Update handles messages and updates the model
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			if m.client != nil {
				m.client.Close()
			}
			return m, tea.Quit

		case key.Matches(msg, m.Keys.Clear):
			m.readings = make(map[string]*Reading)
			m.order = nil
			m.fresh = make(map[string]bool)
			m.events = nil
			return m, nil
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case connectedMsg:
		m.client = msg.client
		m.Connecting = false
		m.Err = nil
		return m, readEventCmd(m.client)

	case connectFailedMsg:
		m.Connecting = false
		m.Err = msg.err
		return m, nil

	case streamEventMsg:
		m.applyEvent(msg.event)
		return m, readEventCmd(m.client)

	case streamClosedMsg:
		m.Err = msg.err
		m.client = nil
		return m, nil
	}

	return m, nil
}

// applyEvent folds one decoded payload into the reading table and log.
func (m *WatchModel) applyEvent(event *StreamEvent) {
	m.TotalPayloads++
	m.fresh = make(map[string]bool)

	for _, k := range event.DocumentKeys() {
		value := event.Document[k]
		if _, seen := m.readings[k]; !seen {
			m.order = append(m.order, k)
		}
		m.readings[k] = &Reading{
			Key:       k,
			Value:     value,
			UpdatedAt: event.ReceivedAt,
		}
		m.fresh[k] = true
	}

	line := fmt.Sprintf("%s  %s  %d bytes, %d records",
		event.ReceivedAt.Local().Format("15:04:05"),
		event.Source,
		event.PayloadSize,
		len(event.Document),
	)
	m.events = append(m.events, line)
	if len(m.events) > maxEventLog {
		m.events = m.events[len(m.events)-maxEventLog:]
	}
}

// View renders the monitor
func (m WatchModel) View() string {
	footer := m.Help.View(m.Keys)

	var content string
	switch {
	case m.Connecting:
		content = fmt.Sprintf("\n %s Connecting to %s...\n", m.Spinner.View(), m.StreamURL)

	case m.Err != nil:
		content = ErrorStyle.Render(fmt.Sprintf("✗ %v", m.Err))

	default:
		content = m.renderReadings()
	}

	return RenderContainer(content, m.GatewayName, footer, m.Width, m.Height)
}

// renderReadings renders the reading table and the recent payload log.
func (m WatchModel) renderReadings() string {
	title := TitleStyle.Render(fmt.Sprintf("READINGS  (%d payloads)", m.TotalPayloads))

	var rows []string
	if len(m.order) == 0 {
		rows = append(rows, HelpStyle.Render("  waiting for payloads..."))
	}
	for _, k := range m.order {
		reading := m.readings[k]

		valueStyle := ReadingValueStyle
		marker := "  "
		if m.fresh[k] {
			valueStyle = FreshReadingStyle
			marker = "• "
		}

		row := lipgloss.JoinHorizontal(lipgloss.Left,
			marker,
			ReadingNameStyle.Render(reading.Key),
			valueStyle.Render(formatValue(reading.Value)),
			HelpStyle.Render("  "+reading.UpdatedAt.Local().Format("15:04:05")),
		)
		rows = append(rows, row)
	}

	logTitle := TitleStyle.Render("RECENT PAYLOADS")
	var logLines []string
	for _, line := range m.events {
		logLines = append(logLines, EventLogStyle.Render("  "+line))
	}
	if len(logLines) == 0 {
		logLines = append(logLines, HelpStyle.Render("  none yet"))
	}

	parts := []string{title, ""}
	parts = append(parts, rows...)
	parts = append(parts, "", logTitle)
	parts = append(parts, logLines...)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// formatValue renders a decoded value for display. Nested documents
// (GPS, accelerometer) are flattened to one line.
func formatValue(v any) string {
	switch val := v.(type) {
	case map[string]any:
		// Axis/coordinate groups in a stable order
		for _, keys := range [][]string{
			{"x", "y", "z"},
			{"latitude", "longitude", "altitude"},
		} {
			if _, ok := val[keys[0]]; ok {
				out := ""
				for i, k := range keys {
					if i > 0 {
						out += "  "
					}
					out += fmt.Sprintf("%s=%v", k, val[k])
				}
				return out
			}
		}
		return fmt.Sprintf("%v", val)
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
