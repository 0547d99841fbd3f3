package ui

import (
	"go.uber.org/zap"

	"github.com/vivekraina7/Windows-Error/pkg/logger"
	"github.com/vivekraina7/Windows-Error/pkg/metrics"
)

// Request-error texts, selected by status code.
const (
	notFoundText     = "The requested resource was not found."
	serverFaultText  = "A server error occurred. Please try again later."
	unreachableText  = "Unable to connect to the server. Please check your connection."
	genericFaultText = "An unexpected error occurred. Please try again."
	copySuccessText  = "Copied to clipboard."
	copyFailureText  = "Could not copy to clipboard."
)

// Page bundles the surfaces the free-standing helpers act on. The hosting
// code builds one Page and hands it to whatever needs alerts or the modal.
type Page struct {
	Alerts *AlertCenter
	Modal  *LoadingModal
	log    *logger.Logger
}

// NewPage creates a page helper bundle.
func NewPage(alerts *AlertCenter, modal *LoadingModal, log *logger.Logger) *Page {
	if log == nil {
		log = logger.NewNop()
	}
	return &Page{Alerts: alerts, Modal: modal, log: log}
}

// HandleRequestError maps a failed request's status code to a user message,
// shows it as an error alert, and hides the loading modal. Status 0 means
// the server never answered.
func (p *Page) HandleRequestError(status int) {
	var msg string
	switch {
	case status == 0:
		msg = unreachableText
	case status == 404:
		msg = notFoundText
	case status >= 500:
		msg = serverFaultText
	default:
		msg = genericFaultText
	}

	p.log.Warn("request failed", zap.Int("status", status))
	p.Alerts.Show(SeverityError, msg, true)
	p.Modal.Hide()
}

// CopyToClipboard writes text to the system clipboard, falling back to
// platform copy commands when the primary API is unavailable, and reports
// the outcome through the alert center.
func (p *Page) CopyToClipboard(text string) {
	err := writeClipboard(text)
	if err != nil {
		err = writeClipboardFallback(text)
	}

	if err != nil {
		p.log.Warn("clipboard copy failed", zap.Error(err))
		metrics.ClipboardCopiesTotal.WithLabelValues("failure").Inc()
		p.Alerts.Show(SeverityError, copyFailureText, true)
		return
	}

	metrics.ClipboardCopiesTotal.WithLabelValues("success").Inc()
	p.Alerts.Show(SeveritySuccess, copySuccessText, true)
}
