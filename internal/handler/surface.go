package handler

import (
	"sync"

	"github.com/vivekraina7/Windows-Error/internal/chat"
)

// SurfaceSnapshot is the widget state a polling page applies to its DOM.
// Revision counters stand in for one-shot effects (clear, focus, scroll):
// the page acts when a counter moves.
type SurfaceSnapshot struct {
	Messages    []chat.RenderedMessage `json:"messages"`
	Typing      bool                   `json:"typing"`
	SendEnabled bool                   `json:"sendEnabled"`
	Handoff     string                 `json:"handoff,omitempty"`
	InputRev    uint64                 `json:"inputRev"`
	FocusRev    uint64                 `json:"focusRev"`
	ScrollRev   uint64                 `json:"scrollRev"`
	Revision    uint64                 `json:"revision"`
}

// snapshotSurface implements chat.Surface by accumulating state for polling
// clients instead of touching a DOM.
type snapshotSurface struct {
	mu          sync.Mutex
	messages    []chat.RenderedMessage
	typing      bool
	sendEnabled bool
	handoff     chat.Reason
	inputRev    uint64
	focusRev    uint64
	scrollRev   uint64
	revision    uint64
}

func newSnapshotSurface() *snapshotSurface {
	return &snapshotSurface{}
}

func (s *snapshotSurface) AppendMessage(msg chat.RenderedMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.revision++
	s.mu.Unlock()
}

func (s *snapshotSurface) SetTyping(active bool) {
	s.mu.Lock()
	s.typing = active
	s.revision++
	s.mu.Unlock()
}

func (s *snapshotSurface) SetSendEnabled(enabled bool) {
	s.mu.Lock()
	s.sendEnabled = enabled
	s.revision++
	s.mu.Unlock()
}

func (s *snapshotSurface) ClearInput() {
	s.mu.Lock()
	s.inputRev++
	s.revision++
	s.mu.Unlock()
}

func (s *snapshotSurface) FocusInput() {
	s.mu.Lock()
	s.focusRev++
	s.revision++
	s.mu.Unlock()
}

func (s *snapshotSurface) ShowHandoff(reason chat.Reason) {
	s.mu.Lock()
	s.handoff = reason
	s.revision++
	s.mu.Unlock()
}

func (s *snapshotSurface) ScrollToLatest() {
	s.mu.Lock()
	s.scrollRev++
	s.revision++
	s.mu.Unlock()
}

// Reset drops the rendered history, mirroring a cleared session.
func (s *snapshotSurface) Reset() {
	s.mu.Lock()
	s.messages = nil
	s.handoff = ""
	s.revision++
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *snapshotSurface) Snapshot() SurfaceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]chat.RenderedMessage, len(s.messages))
	copy(messages, s.messages)

	return SurfaceSnapshot{
		Messages:    messages,
		Typing:      s.typing,
		SendEnabled: s.sendEnabled,
		Handoff:     string(s.handoff),
		InputRev:    s.inputRev,
		FocusRev:    s.focusRev,
		ScrollRev:   s.scrollRev,
		Revision:    s.revision,
	}
}
