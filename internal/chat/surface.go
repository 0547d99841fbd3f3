package chat

import (
	"github.com/vivekraina7/Windows-Error/internal/model"
)

// RenderedMessage is a history entry paired with its display-safe HTML.
type RenderedMessage struct {
	Role    model.Role `json:"role"`
	HTML    string     `json:"html"`
	IsError bool       `json:"isError"`
}

// Surface is the widget's view of the hosting page: a message list, a text
// input with a send affordance, a typing indicator, and a hand-off surface.
// The session drives it; it never calls back into the session.
//
// Implementations may debounce ScrollToLatest to let layout settle; every
// other call should take effect immediately.
type Surface interface {
	AppendMessage(msg RenderedMessage)
	SetTyping(active bool)
	SetSendEnabled(enabled bool)
	ClearInput()
	FocusInput()
	ShowHandoff(reason Reason)
	ScrollToLatest()
}

// NopSurface discards all surface updates. Useful for headless sessions.
type NopSurface struct{}

func (NopSurface) AppendMessage(RenderedMessage) {}
func (NopSurface) SetTyping(bool)                {}
func (NopSurface) SetSendEnabled(bool)           {}
func (NopSurface) ClearInput()                   {}
func (NopSurface) FocusInput()                   {}
func (NopSurface) ShowHandoff(Reason)            {}
func (NopSurface) ScrollToLatest()               {}
