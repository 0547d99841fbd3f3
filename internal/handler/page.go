package handler

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vivekraina7/Windows-Error/internal/ui"
	"github.com/vivekraina7/Windows-Error/pkg/logger"
)

// PageSnapshot is the page-level state a polling page applies to its DOM:
// active alert banners and the loading modal.
type PageSnapshot struct {
	Alerts   []ui.Alert    `json:"alerts"`
	Modal    ui.ModalState `json:"modal"`
	Revision uint64        `json:"revision"`
}

// PageHandler hosts the shared page state: the alert center, the loading
// modal, progress animation, scan simulation, form validation, and
// clipboard copy. Pages poll the snapshot and apply it, the same way the
// widget applies its surface snapshot.
type PageHandler struct {
	page         *ui.Page
	animator     *ui.Animator
	scanInterval time.Duration

	mu       sync.Mutex
	alerts   []ui.Alert
	modal    ui.ModalState
	revision uint64
}

// NewPageHandler creates the page-state host. alertTTL is the auto-dismiss
// window for alerts; scanInterval paces the simulated scan phases.
func NewPageHandler(alertTTL, scanInterval time.Duration, log *logger.Logger) *PageHandler {
	h := &PageHandler{
		animator:     ui.NewAnimator(0),
		scanInterval: scanInterval,
	}

	alerts := ui.NewAlertCenter(alertTTL, func(active []ui.Alert) {
		h.mu.Lock()
		h.alerts = active
		h.revision++
		h.mu.Unlock()
	})
	modal := ui.NewLoadingModal(func(state ui.ModalState) {
		h.mu.Lock()
		h.modal = state
		h.revision++
		h.mu.Unlock()
	})

	h.page = ui.NewPage(alerts, modal, log)
	return h
}

// Snapshot handles GET /api/v1/page
func (h *PageHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *PageHandler) snapshot() PageSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	alerts := make([]ui.Alert, len(h.alerts))
	copy(alerts, h.alerts)
	return PageSnapshot{
		Alerts:   alerts,
		Modal:    h.modal,
		Revision: h.revision,
	}
}

type showAlertRequest struct {
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	AutoClose bool   `json:"autoClose"`
}

// ShowAlert handles POST /api/v1/page/alerts
func (h *PageHandler) ShowAlert(w http.ResponseWriter, r *http.Request) {
	var req showAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	severity, ok := parseSeverity(req.Severity)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown alert severity")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	h.page.Alerts.Show(severity, req.Message, req.AutoClose)
	writeJSON(w, http.StatusOK, h.snapshot())
}

// DismissAlert handles DELETE /api/v1/page/alerts/{severity}
func (h *PageHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	severity, ok := parseSeverity(chi.URLParam(r, "severity"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown alert severity")
		return
	}

	h.page.Alerts.Dismiss(severity)
	writeJSON(w, http.StatusOK, h.snapshot())
}

func parseSeverity(s string) (ui.Severity, bool) {
	switch ui.Severity(s) {
	case ui.SeveritySuccess, ui.SeverityError, ui.SeverityWarning, ui.SeverityInfo:
		return ui.Severity(s), true
	default:
		return "", false
	}
}

// StartScan handles POST /api/v1/page/scan. The modal opens immediately
// and the phase sequence advances in the background; pages watch it
// through the snapshot.
func (h *PageHandler) StartScan(w http.ResponseWriter, r *http.Request) {
	h.page.Modal.Show("Scanning for dump files...", true)
	ui.SimulateScanProgress(h.page.Modal, h.scanInterval)
	writeJSON(w, http.StatusAccepted, h.snapshot())
}

type animateRequest struct {
	Target     float64 `json:"target"`
	DurationMs int     `json:"durationMs"`
	Caption    string  `json:"caption"`
}

// AnimateProgress handles POST /api/v1/page/progress: interpolates the
// modal's progress bar to the target percent over the given duration.
func (h *PageHandler) AnimateProgress(w http.ResponseWriter, r *http.Request) {
	var req animateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Target < 0 || req.Target > 100 {
		writeError(w, http.StatusBadRequest, "target must be between 0 and 100")
		return
	}

	h.animator.Animate(req.Target, time.Duration(req.DurationMs)*time.Millisecond,
		func(percent float64) {
			h.page.Modal.UpdateProgress(int(percent), req.Caption)
		})
	writeJSON(w, http.StatusAccepted, h.snapshot())
}

type requestErrorReport struct {
	Status int `json:"status"`
}

// ReportRequestError handles POST /api/v1/page/request-errors: the page
// reports a failed request and gets the matching error alert shown.
func (h *PageHandler) ReportRequestError(w http.ResponseWriter, r *http.Request) {
	var req requestErrorReport
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.page.HandleRequestError(req.Status)
	writeJSON(w, http.StatusOK, h.snapshot())
}

type clipboardRequest struct {
	Text string `json:"text"`
}

// CopyToClipboard handles POST /api/v1/page/clipboard. The outcome lands
// in the alert center either way.
func (h *PageHandler) CopyToClipboard(w http.ResponseWriter, r *http.Request) {
	var req clipboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text cannot be empty")
		return
	}

	h.page.CopyToClipboard(req.Text)
	writeJSON(w, http.StatusOK, h.snapshot())
}

type validateFormRequest struct {
	ID     string          `json:"id"`
	Fields []formFieldBody `json:"fields"`
}

type formFieldBody struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type validateFormResponse struct {
	Valid  bool              `json:"valid"`
	Fields []formFieldResult `json:"fields"`
}

type formFieldResult struct {
	Name    string `json:"name"`
	Invalid bool   `json:"invalid"`
}

// ValidateForm handles POST /api/v1/page/forms: server-side rendition of
// the page's submit-time form validation.
func (h *PageHandler) ValidateForm(w http.ResponseWriter, r *http.Request) {
	var req validateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := ui.Form{ID: req.ID}
	for _, f := range req.Fields {
		fieldType := ui.FieldText
		if f.Type == string(ui.FieldEmail) {
			fieldType = ui.FieldEmail
		}
		form.Fields = append(form.Fields, ui.Field{
			Name:     f.Name,
			Value:    f.Value,
			Type:     fieldType,
			Required: f.Required,
		})
	}

	valid := form.Validate()
	resp := validateFormResponse{Valid: valid}
	for _, f := range form.Fields {
		resp.Fields = append(resp.Fields, formFieldResult{Name: f.Name, Invalid: f.Invalid})
	}
	writeJSON(w, http.StatusOK, resp)
}
