// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/compy-tui/internal/assistant"
	"github.com/jeranaias/compy-tui/internal/model"
	"github.com/jeranaias/compy-tui/internal/ratelimit"
	"github.com/jeranaias/compy-tui/internal/suggest"
	"github.com/jeranaias/compy-tui/internal/ui/components"
	"github.com/jeranaias/compy-tui/internal/ui/styles"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// State is the session lifecycle state.
type State int

const (
	// StateIdle accepts input.
	StateIdle State = iota
	// StateSubmitting has sent the request but received no chunk yet.
	StateSubmitting
	// StateStreaming is receiving response chunks.
	StateStreaming
	// StateError shows a failed exchange; the session stays operable.
	StateError
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateStreaming:
		return "streaming"
	case StateError:
		return "error"
	}
	return "unknown"
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat screen.
type Model struct {
	state        State
	conversation *model.Conversation
	client       *assistant.Client
	logger       zerolog.Logger

	theme       *styles.Theme
	messageView *components.MessageView
	errorBanner *components.ErrorBanner
	suggestions *components.Suggestions

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	guard  *streamGuard
	events chan tea.Msg

	lastError *ratelimit.Info

	width           int
	height          int
	ready           bool
	showSuggestions bool
}

// New creates the chat screen. The suggestion bus is injected by the caller,
// which also owns the subscription that feeds SuggestionMsg back in.
func New(client *assistant.Client, bus *suggest.Bus, showSuggestions bool, logger zerolog.Logger) *Model {
	theme := styles.NewTheme(80, 24)

	input := textinput.New()
	input.Placeholder = "Pregunta por un producto..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return &Model{
		state:           StateIdle,
		conversation:    model.NewConversation(),
		client:          client,
		logger:          logger,
		theme:           theme,
		messageView:     components.NewMessageView(theme, 80),
		errorBanner:     components.NewErrorBanner(theme, 80),
		suggestions:     components.NewSuggestions(theme, bus),
		input:           input,
		spinner:         sp,
		guard:           newStreamGuard(),
		showSuggestions: showSuggestions,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current session state.
func (m *Model) State() State {
	return m.state
}

// Conversation returns the message history.
func (m *Model) Conversation() *model.Conversation {
	return m.conversation
}

// LastError returns the decoded error shown in the banner, or nil.
func (m *Model) LastError() *ratelimit.Info {
	return m.lastError
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		if m.state == StateSubmitting || m.state == StateStreaming {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case StreamEventMsg:
		return m.handleStreamEvent(msg)
	case StreamCompleteMsg:
		return m.handleStreamComplete(msg)
	case StreamErrorMsg:
		return m.handleStreamError(msg)
	case SuggestionMsg:
		return m.handleSuggestion(msg)
	case ErrorDismissMsg:
		return m.dismissError()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize adjusts the layout to the terminal size.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.Resize(msg.Width, msg.Height)
	m.messageView.SetWidth(msg.Width)
	m.errorBanner.SetWidth(msg.Width)

	viewportHeight := msg.Height - chromeHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}

	m.input.Width = msg.Width - 6
	m.updateViewport()
	return m, nil
}

// handleKey routes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.guard.stop()
		return m, tea.Quit

	case "esc":
		switch m.state {
		case StateSubmitting, StateStreaming:
			return m.stopStream()
		case StateError:
			return m.dismissError()
		}
		return m, nil

	case "enter":
		return m.submit()

	case "1", "2", "3", "4":
		if m.welcomeVisible() && m.input.Value() == "" {
			m.suggestions.Select(int(msg.String()[0] - '1'))
			return m, nil
		}

	case "up", "down", "pgup", "pgdown":
		if m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// welcomeVisible reports whether the suggestion chips are on screen.
func (m *Model) welcomeVisible() bool {
	return m.showSuggestions && m.state == StateIdle && m.conversation.IsEmpty()
}

// =============================================================================
// SUBMIT AND STREAM
// =============================================================================

// submit sends the current input. Valid while idle or showing an error;
// blank input is a no-op.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.state == StateSubmitting || m.state == StateStreaming {
		return m, nil
	}

	trimmed := strings.TrimSpace(m.input.Value())
	if trimmed == "" {
		return m, nil
	}

	m.lastError = nil
	m.state = StateSubmitting
	m.conversation.AddUserMessage(trimmed)
	m.input.Reset()

	history := m.conversation.ToChatMessages()
	gen, ctx := m.guard.begin(context.Background())

	ch := make(chan tea.Msg, 64)
	m.events = ch
	go runStream(ctx, m.client, history, gen, ch)

	m.logger.Debug().Int("generation", gen).Int("history", len(history)).Msg("submitting message")

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(m.spinner.Tick, listenStream(ch))
}

// runStream drives one request and forwards everything as generation-tagged
// messages. The channel always closes, even when sends are dropped after a
// cancel, so pending listeners unblock.
func runStream(ctx context.Context, client *assistant.Client, history []assistant.ChatMessage, gen int, ch chan<- tea.Msg) {
	defer close(ch)

	send := func(msg tea.Msg) bool {
		select {
		case ch <- msg:
			return true
		case <-ctx.Done():
			return false
		}
	}

	events, errs := client.ChatStreamChan(ctx, history)
	for ev := range events {
		if !send(StreamEventMsg{Generation: gen, Event: ev}) {
			break
		}
	}

	if err := <-errs; err != nil {
		send(StreamErrorMsg{Generation: gen, Err: err})
		return
	}
	send(StreamCompleteMsg{Generation: gen})
}

// listenStream waits for the next message of the active stream.
func listenStream(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// handleStreamEvent applies one chunk to the conversation.
func (m *Model) handleStreamEvent(msg StreamEventMsg) (tea.Model, tea.Cmd) {
	if !m.guard.matches(msg.Generation) {
		return m, nil
	}

	// First chunk opens the assistant message
	if m.state == StateSubmitting {
		m.state = StateStreaming
		m.conversation.AddAssistantMessage()
	}
	if m.state != StateStreaming {
		return m, nil
	}

	switch {
	case msg.Event.IsText():
		m.conversation.AppendToLast(msg.Event.Content)
	case msg.Event.IsToolResult():
		m.conversation.AttachToolResultToLast(assistant.ToolResult{Products: msg.Event.Products})
	}

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, listenStream(m.events)
}

// handleStreamComplete finalizes the exchange.
func (m *Model) handleStreamComplete(msg StreamCompleteMsg) (tea.Model, tea.Cmd) {
	if !m.guard.matches(msg.Generation) {
		return m, nil
	}

	m.guard.finish()
	m.conversation.FinalizeLast()
	m.state = StateIdle
	m.input.Focus()
	m.updateViewport()
	m.viewport.GotoBottom()

	m.logger.Debug().Int("generation", msg.Generation).Msg("stream complete")
	return m, nil
}

// handleStreamError surfaces a failed exchange. Partial content is kept.
func (m *Model) handleStreamError(msg StreamErrorMsg) (tea.Model, tea.Cmd) {
	if !m.guard.matches(msg.Generation) {
		return m, nil
	}

	m.guard.finish()
	m.conversation.FinalizeLast()

	info := ratelimit.Decode(msg.Err)
	m.lastError = &info
	m.state = StateError
	m.input.Focus()
	m.updateViewport()

	m.logger.Warn().
		Int("generation", msg.Generation).
		Bool("rate_limit", info.IsRateLimit).
		Err(msg.Err).
		Msg("stream failed")
	return m, nil
}

// stopStream cancels the in-flight request and returns to idle with the
// partial response kept. No-op outside submitting/streaming.
func (m *Model) stopStream() (tea.Model, tea.Cmd) {
	if m.state != StateSubmitting && m.state != StateStreaming {
		return m, nil
	}

	m.guard.stop()
	m.conversation.FinalizeLast()
	m.state = StateIdle
	m.input.Focus()
	m.updateViewport()

	m.logger.Debug().Msg("stream stopped by user")
	return m, nil
}

// =============================================================================
// SUGGESTIONS AND ERRORS
// =============================================================================

// handleSuggestion prefills the input. Only valid on an empty idle session;
// the suggestion is not submitted automatically.
func (m *Model) handleSuggestion(msg SuggestionMsg) (tea.Model, tea.Cmd) {
	if m.state != StateIdle || !m.conversation.IsEmpty() {
		return m, nil
	}
	m.input.SetValue(msg.Text)
	m.input.CursorEnd()
	return m, nil
}

// dismissError clears the banner and returns to idle.
func (m *Model) dismissError() (tea.Model, tea.Cmd) {
	if m.state != StateError {
		return m, nil
	}
	m.lastError = nil
	m.state = StateIdle
	m.input.Focus()
	return m, nil
}

// =============================================================================
// VIEWPORT
// =============================================================================

// updateViewport refreshes the scrollback content.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.messageView.RenderConversation(m.conversation))
}
