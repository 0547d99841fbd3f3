package ui

import (
	"sync"
	"time"
)

// frameInterval is the fixed frame rate for progress animation, matching a
// 10ms UI timer step.
const frameInterval = 10 * time.Millisecond

// Animator interpolates a visual progress value from 0 to a target percent
// over a duration at a fixed frame rate.
type Animator struct {
	frame time.Duration
}

// NewAnimator creates an animator. frame <= 0 uses the default interval.
func NewAnimator(frame time.Duration) *Animator {
	if frame <= 0 {
		frame = frameInterval
	}
	return &Animator{frame: frame}
}

// Animate runs the interpolation in the background, invoking update with the
// current percent on every frame and once more with the exact target at the
// end. Once started the animation runs to completion; the returned channel
// closes when it finishes.
func (a *Animator) Animate(target float64, duration time.Duration, update func(percent float64)) <-chan struct{} {
	done := make(chan struct{})

	steps := int(duration / a.frame)
	if steps < 1 {
		steps = 1
	}
	increment := target / float64(steps)

	go func() {
		defer close(done)
		ticker := time.NewTicker(a.frame)
		defer ticker.Stop()

		current := 0.0
		for i := 0; i < steps; i++ {
			<-ticker.C
			current += increment
			if current > target {
				current = target
			}
			update(current)
		}
		if current != target {
			update(target)
		}
	}()

	return done
}

// LoadingModal is the blocking wait modal's state: a title, an optional
// progress display, and a caption. Observers receive every state change.
type LoadingModal struct {
	mu           sync.Mutex
	visible      bool
	title        string
	showProgress bool
	percent      int
	text         string
	onChange     func(ModalState)
}

// ModalState is a snapshot of the loading modal.
type ModalState struct {
	Visible      bool   `json:"visible"`
	Title        string `json:"title"`
	ShowProgress bool   `json:"showProgress"`
	Percent      int    `json:"percent"`
	Text         string `json:"text"`
}

// NewLoadingModal creates a hidden loading modal. onChange may be nil.
func NewLoadingModal(onChange func(ModalState)) *LoadingModal {
	return &LoadingModal{onChange: onChange}
}

// Show opens the modal with a fresh progress display.
func (m *LoadingModal) Show(title string, showProgress bool) {
	m.mu.Lock()
	m.visible = true
	m.title = title
	m.showProgress = showProgress
	m.percent = 0
	m.text = ""
	state := m.stateLocked()
	m.mu.Unlock()
	m.emit(state)
}

// Hide closes the modal.
func (m *LoadingModal) Hide() {
	m.mu.Lock()
	m.visible = false
	state := m.stateLocked()
	m.mu.Unlock()
	m.emit(state)
}

// UpdateProgress sets the progress percent and caption.
func (m *LoadingModal) UpdateProgress(percent int, text string) {
	m.mu.Lock()
	m.percent = percent
	m.text = text
	state := m.stateLocked()
	m.mu.Unlock()
	m.emit(state)
}

// Snapshot returns the current modal state.
func (m *LoadingModal) Snapshot() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *LoadingModal) stateLocked() ModalState {
	return ModalState{
		Visible:      m.visible,
		Title:        m.title,
		ShowProgress: m.showProgress,
		Percent:      m.percent,
		Text:         m.text,
	}
}

func (m *LoadingModal) emit(state ModalState) {
	if m.onChange != nil {
		m.onChange(state)
	}
}

// scanPhase is one step of the simulated dump scan.
type scanPhase struct {
	percent int
	caption string
}

// scanPhases is the fixed five-phase sequence shown while a scan request is
// in flight. It advances on a timer, independent of the scan's actual
// progress.
var scanPhases = []scanPhase{
	{10, "Scanning system directories..."},
	{30, "Locating memory dump files..."},
	{55, "Reading dump file headers..."},
	{80, "Matching error codes..."},
	{100, "Finalizing results..."},
}

// SimulateScanProgress advances the modal through the scan phases, one per
// interval (1s by default). The returned channel closes after the last
// phase; the sequence always runs to completion.
func SimulateScanProgress(modal *LoadingModal, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = time.Second
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for _, phase := range scanPhases {
			<-ticker.C
			modal.UpdateProgress(phase.percent, phase.caption)
		}
	}()
	return done
}
