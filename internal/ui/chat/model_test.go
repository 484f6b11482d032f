// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/compy-tui/internal/assistant"
	"github.com/jeranaias/compy-tui/internal/suggest"
)

// newTestModel builds a ready model without touching the network.
func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(assistant.New("http://127.0.0.1:1"), suggest.NewBus(), true, zerolog.Nop())
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return resized.(*Model)
}

// beginStream puts the model in the submitting state with an active
// generation, the way submit does, without issuing a request.
func beginStream(m *Model) int {
	gen, _ := m.guard.begin(context.Background())
	m.events = make(chan tea.Msg, 4)
	m.state = StateSubmitting
	return gen
}

func keyMsg(key tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: key}
}

func textEvent(gen int, content string) StreamEventMsg {
	return StreamEventMsg{Generation: gen, Event: assistant.StreamEvent{Type: "text", Content: content}}
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmitTransitionsToSubmitting(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("iphone 13 barato")

	updated, cmd := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(*Model)

	if m.State() != StateSubmitting {
		t.Errorf("Expected submitting state, got %s", m.State())
	}
	if cmd == nil {
		t.Error("Expected a command to start the stream")
	}
	if m.Conversation().MessageCount() != 1 {
		t.Fatalf("Expected 1 message, got %d", m.Conversation().MessageCount())
	}
	if got := m.Conversation().GetLastMessage().Content; got != "iphone 13 barato" {
		t.Errorf("Expected trimmed input appended, got %q", got)
	}
	if m.input.Value() != "" {
		t.Error("Expected input cleared after submit")
	}
}

func TestSubmitTrimsInput(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("  televisores lg  ")

	updated, _ := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(*Model)

	if got := m.Conversation().GetLastMessage().Content; got != "televisores lg" {
		t.Errorf("Expected trimmed content, got %q", got)
	}
}

func TestSubmitBlankIsNoOp(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("   ")

	updated, _ := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(*Model)

	if m.State() != StateIdle {
		t.Errorf("Expected idle state, got %s", m.State())
	}
	if !m.Conversation().IsEmpty() {
		t.Error("Expected no messages for blank submit")
	}
}

func TestSubmitIgnoredWhileStreaming(t *testing.T) {
	m := newTestModel(t)
	gen := beginStream(m)
	m.Update(textEvent(gen, "hola"))

	before := m.Conversation().MessageCount()
	m.input.SetValue("otra consulta")
	updated, _ := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(*Model)

	if m.State() != StateStreaming {
		t.Errorf("Expected streaming state unchanged, got %s", m.State())
	}
	if m.Conversation().MessageCount() != before {
		t.Error("Submit during streaming must not append messages")
	}
}

// =============================================================================
// STREAM CHUNKS
// =============================================================================

func TestFirstChunkOpensAssistantMessage(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)

	updated, cmd := m.Update(textEvent(gen, "Encontré "))
	m = updated.(*Model)

	if m.State() != StateStreaming {
		t.Errorf("Expected streaming after first chunk, got %s", m.State())
	}
	if cmd == nil {
		t.Error("Expected a re-listen command")
	}

	last := m.Conversation().GetLastMessage()
	if last.Role != "assistant" {
		t.Fatalf("Expected assistant message, got role %s", last.Role)
	}
	if !last.IsStreaming {
		t.Error("Assistant message should be streaming")
	}

	m.Update(textEvent(gen, "3 opciones"))
	if got := last.GetDisplayContent(); got != "Encontré 3 opciones" {
		t.Errorf("Expected accumulated content, got %q", got)
	}
}

func TestToolResultAttachesProducts(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("televisores")
	gen := beginStream(m)

	m.Update(StreamEventMsg{Generation: gen, Event: assistant.StreamEvent{
		Type:     "tool_result",
		Products: []assistant.Product{{ID: "tv1", Title: "LG OLED 55"}},
	}})

	last := m.Conversation().GetLastMessage()
	if !last.HasProducts() {
		t.Fatal("Expected products attached to the assistant message")
	}
	if last.Products()[0].ID != "tv1" {
		t.Errorf("Unexpected product: %+v", last.Products()[0])
	}
}

func TestStaleChunkDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	stale := beginStream(m)

	// The user stops; a chunk from the cancelled stream arrives late
	updated, _ := m.Update(keyMsg(tea.KeyEsc))
	m = updated.(*Model)
	if m.State() != StateIdle {
		t.Fatalf("Expected idle after stop, got %s", m.State())
	}

	updated, cmd := m.Update(textEvent(stale, "tarde"))
	m = updated.(*Model)

	if cmd != nil {
		t.Error("Stale chunk must not re-listen")
	}
	if m.State() != StateIdle {
		t.Errorf("Stale chunk changed state to %s", m.State())
	}
	if last := m.Conversation().GetLastMessage(); last.Role != "user" {
		t.Error("Stale chunk appended a message")
	}
}

func TestStaleChunkAfterResubmit(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("primera")
	stale := beginStream(m)

	// New exchange supersedes the old one
	fresh := beginStream(m)
	m.Update(textEvent(fresh, "respuesta nueva"))

	m.Update(textEvent(stale, "respuesta vieja"))

	last := m.Conversation().GetLastMessage()
	if got := last.GetDisplayContent(); got != "respuesta nueva" {
		t.Errorf("Stale chunk leaked into new exchange: %q", got)
	}
}

// =============================================================================
// COMPLETE / ERROR / STOP
// =============================================================================

func TestCompleteFinalizesAndReturnsToIdle(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)
	m.Update(textEvent(gen, "listo"))

	updated, _ := m.Update(StreamCompleteMsg{Generation: gen})
	m = updated.(*Model)

	if m.State() != StateIdle {
		t.Errorf("Expected idle after complete, got %s", m.State())
	}
	last := m.Conversation().GetLastMessage()
	if last.IsStreaming {
		t.Error("Expected message finalized")
	}
	if last.Content != "listo" {
		t.Errorf("Expected finalized content, got %q", last.Content)
	}
}

func TestStreamErrorKeepsPartialContent(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)
	m.Update(textEvent(gen, "respuesta parcial"))

	updated, _ := m.Update(StreamErrorMsg{Generation: gen, Err: &assistant.APIError{Status: 500, Detail: "boom"}})
	m = updated.(*Model)

	if m.State() != StateError {
		t.Errorf("Expected error state, got %s", m.State())
	}
	if m.LastError() == nil {
		t.Fatal("Expected decoded error")
	}
	if m.LastError().IsRateLimit {
		t.Error("500 must not classify as rate limit")
	}
	if got := m.Conversation().GetLastMessage().Content; got != "respuesta parcial" {
		t.Errorf("Expected partial content kept, got %q", got)
	}
}

func TestRateLimitErrorDecoded(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)

	err := &assistant.APIError{Status: 429, Detail: `{"error":"Too Many Requests","resetSeconds":42}`}
	updated, _ := m.Update(StreamErrorMsg{Generation: gen, Err: err})
	m = updated.(*Model)

	info := m.LastError()
	if info == nil || !info.IsRateLimit {
		t.Fatal("Expected rate-limit classification")
	}
	if info.RetrySeconds != 42 {
		t.Errorf("Expected 42 retry seconds, got %d", info.RetrySeconds)
	}
	if info.Message() != "Please try again in 42 seconds." {
		t.Errorf("Unexpected message: %q", info.Message())
	}
}

func TestErrorStateStaysOperable(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)
	m.Update(StreamErrorMsg{Generation: gen, Err: &assistant.APIError{Status: 500, Detail: "boom"}})

	// Resubmit directly from the error state
	m.input.SetValue("segundo intento")
	updated, _ := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(*Model)

	if m.State() != StateSubmitting {
		t.Errorf("Expected submit allowed from error state, got %s", m.State())
	}
	if m.LastError() != nil {
		t.Error("Expected error cleared on resubmit")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)
	m.Update(textEvent(gen, "parcial"))

	updated, _ := m.Update(keyMsg(tea.KeyEsc))
	m = updated.(*Model)
	if m.State() != StateIdle {
		t.Fatalf("Expected idle after stop, got %s", m.State())
	}
	if got := m.Conversation().GetLastMessage().Content; got != "parcial" {
		t.Errorf("Expected partial kept on stop, got %q", got)
	}

	// Second esc is a no-op
	updated, _ = m.Update(keyMsg(tea.KeyEsc))
	m = updated.(*Model)
	if m.State() != StateIdle {
		t.Errorf("Second stop changed state to %s", m.State())
	}
}

func TestLateCompleteAfterStopDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)
	m.Update(textEvent(gen, "parcial"))
	m.Update(keyMsg(tea.KeyEsc))

	m.conversation.GetLastMessage().FinalizeStream()
	contentBefore := m.Conversation().GetLastMessage().Content

	updated, _ := m.Update(StreamCompleteMsg{Generation: gen})
	m = updated.(*Model)

	if m.Conversation().GetLastMessage().Content != contentBefore {
		t.Error("Late complete modified the conversation")
	}
}

// =============================================================================
// SUGGESTIONS AND ERROR DISMISS
// =============================================================================

func TestSuggestionPrefillsInput(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(SuggestionMsg{Text: "Televisores LG de 60 pulgadas"})
	m = updated.(*Model)

	if m.input.Value() != "Televisores LG de 60 pulgadas" {
		t.Errorf("Expected input prefilled, got %q", m.input.Value())
	}
	if m.State() != StateIdle {
		t.Errorf("Suggestion must not change state, got %s", m.State())
	}
	if !m.Conversation().IsEmpty() {
		t.Error("Suggestion must not submit")
	}
}

func TestSuggestionIgnoredMidConversation(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("ya empecé")
	m.input.SetValue("escribiendo")

	updated, _ := m.Update(SuggestionMsg{Text: "otra cosa"})
	m = updated.(*Model)

	if m.input.Value() != "escribiendo" {
		t.Errorf("Suggestion overwrote input mid-conversation: %q", m.input.Value())
	}
}

func TestBusDeliversSuggestionMsg(t *testing.T) {
	bus := suggest.NewBus()
	m := New(assistant.New("http://127.0.0.1:1"), bus, true, zerolog.Nop())
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = resized.(*Model)

	var delivered []tea.Msg
	bus.Subscribe(func(text string) {
		delivered = append(delivered, SuggestionMsg{Text: text})
	})

	// Digit key on the welcome screen publishes chip #2
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})

	if len(delivered) != 1 {
		t.Fatalf("Expected 1 published suggestion, got %d", len(delivered))
	}
	updated, _ := m.Update(delivered[0])
	m = updated.(*Model)

	if m.input.Value() != suggest.Defaults()[1] {
		t.Errorf("Expected chip #2 prefilled, got %q", m.input.Value())
	}
}

func TestEscDismissesError(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)
	m.Update(StreamErrorMsg{Generation: gen, Err: &assistant.APIError{Status: 429, Detail: "too many requests"}})

	updated, _ := m.Update(keyMsg(tea.KeyEsc))
	m = updated.(*Model)

	if m.State() != StateIdle {
		t.Errorf("Expected idle after dismiss, got %s", m.State())
	}
	if m.LastError() != nil {
		t.Error("Expected error cleared")
	}
}

// =============================================================================
// VIEW
// =============================================================================

func TestViewShowsWelcomeOnEmptyConversation(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	if !strings.Contains(view, "Compy AI") {
		t.Error("Expected brand in view")
	}
	if !strings.Contains(view, suggest.Defaults()[0]) {
		t.Error("Expected suggestion chips on the welcome screen")
	}
}

func TestViewShowsSearchingPlaceholder(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("televisores")
	gen := beginStream(m)
	m.Update(StreamEventMsg{Generation: gen, Event: assistant.StreamEvent{
		Type:     "tool_result",
		Products: nil,
	}})

	view := m.View()
	if !strings.Contains(view, "Buscando productos...") {
		t.Error("Expected placeholder for empty streaming assistant message")
	}
}

func TestViewShowsRateLimitBanner(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("hola")
	gen := beginStream(m)
	m.Update(StreamErrorMsg{Generation: gen, Err: &assistant.APIError{Status: 429, Detail: `{"resetSeconds":30}`}})

	view := m.View()
	if !strings.Contains(view, "Please try again in 30 seconds.") {
		t.Error("Expected rate-limit retry message in banner")
	}
}
