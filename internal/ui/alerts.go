// Package ui provides the page-level helpers the widget and other page
// scripts share: alert banners, loading-modal state, progress animation,
// formatting, validation, and clipboard copy. Each helper is independent;
// none of them depends on the chat session.
package ui

import (
	"sort"
	"sync"
	"time"

	"github.com/vivekraina7/Windows-Error/pkg/metrics"
)

// Severity classifies an alert banner.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Alert is one visible banner.
type Alert struct {
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	AutoClose bool      `json:"autoClose"`
	CreatedAt time.Time `json:"createdAt"`
}

const defaultAlertTTL = 5 * time.Second

// AlertCenter manages dismissible banners. Showing an alert replaces any
// existing banner of the same severity; banners of different severities
// coexist. Auto-close timers are per severity and self-cancel when the
// banner they belong to is replaced or dismissed.
type AlertCenter struct {
	ttl      time.Duration
	onChange func([]Alert)

	mu     sync.Mutex
	active map[Severity]*Alert
	timers map[Severity]*time.Timer
}

// NewAlertCenter creates an alert center. A nil onChange is allowed; ttl <= 0
// uses the 5 second default.
func NewAlertCenter(ttl time.Duration, onChange func([]Alert)) *AlertCenter {
	if ttl <= 0 {
		ttl = defaultAlertTTL
	}
	return &AlertCenter{
		ttl:      ttl,
		onChange: onChange,
		active:   make(map[Severity]*Alert),
		timers:   make(map[Severity]*time.Timer),
	}
}

// Show inserts a banner, replacing any current banner of the same severity.
// When autoClose is set the banner dismisses itself after the TTL.
func (c *AlertCenter) Show(severity Severity, message string, autoClose bool) {
	c.mu.Lock()
	if t, ok := c.timers[severity]; ok {
		t.Stop()
		delete(c.timers, severity)
	}
	alert := &Alert{
		Severity:  severity,
		Message:   message,
		AutoClose: autoClose,
		CreatedAt: time.Now(),
	}
	c.active[severity] = alert
	if autoClose {
		c.timers[severity] = time.AfterFunc(c.ttl, func() {
			c.dismissIf(severity, alert)
		})
	}
	c.mu.Unlock()

	metrics.AlertsTotal.WithLabelValues(string(severity)).Inc()
	c.notify()
}

// Dismiss removes the banner of the given severity, if any.
func (c *AlertCenter) Dismiss(severity Severity) {
	c.mu.Lock()
	if t, ok := c.timers[severity]; ok {
		t.Stop()
		delete(c.timers, severity)
	}
	_, existed := c.active[severity]
	delete(c.active, severity)
	c.mu.Unlock()

	if existed {
		c.notify()
	}
}

// dismissIf removes the banner only if it is still the one the expired
// timer was armed for.
func (c *AlertCenter) dismissIf(severity Severity, alert *Alert) {
	c.mu.Lock()
	if c.active[severity] != alert {
		c.mu.Unlock()
		return
	}
	delete(c.active, severity)
	delete(c.timers, severity)
	c.mu.Unlock()

	c.notify()
}

// Active returns the visible banners in insertion order.
func (c *AlertCenter) Active() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Alert, 0, len(c.active))
	for _, a := range c.active {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (c *AlertCenter) notify() {
	if c.onChange != nil {
		c.onChange(c.Active())
	}
}
