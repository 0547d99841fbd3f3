package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAnimateReachesTarget(t *testing.T) {
	a := NewAnimator(time.Millisecond)

	var mu sync.Mutex
	var last float64
	done := a.Animate(90, 20*time.Millisecond, func(percent float64) {
		mu.Lock()
		last = percent
		mu.Unlock()
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("animation did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 90.0, last)
}

func TestAnimateNeverOvershoots(t *testing.T) {
	a := NewAnimator(time.Millisecond)

	var mu sync.Mutex
	var values []float64
	done := a.Animate(50, 10*time.Millisecond, func(percent float64) {
		mu.Lock()
		values = append(values, percent)
		mu.Unlock()
	})
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, values)
	for i, v := range values {
		require.LessOrEqual(t, v, 50.0)
		if i > 0 {
			require.GreaterOrEqual(t, v, values[i-1])
		}
	}
}

func TestLoadingModalLifecycle(t *testing.T) {
	var states []ModalState
	m := NewLoadingModal(func(s ModalState) {
		states = append(states, s)
	})

	m.Show("Scanning for dump files...", true)
	m.UpdateProgress(40, "halfway there")
	m.Hide()

	require.Len(t, states, 3)
	require.True(t, states[0].Visible)
	require.Equal(t, "Scanning for dump files...", states[0].Title)
	require.True(t, states[0].ShowProgress)
	require.Zero(t, states[0].Percent)

	require.Equal(t, 40, states[1].Percent)
	require.Equal(t, "halfway there", states[1].Text)

	require.False(t, states[2].Visible)
}

func TestShowResetsProgress(t *testing.T) {
	m := NewLoadingModal(nil)

	m.Show("first", true)
	m.UpdateProgress(80, "almost")
	m.Hide()

	m.Show("second", true)
	state := m.Snapshot()
	require.Zero(t, state.Percent)
	require.Empty(t, state.Text)
	require.Equal(t, "second", state.Title)
}

func TestSimulateScanProgress(t *testing.T) {
	var mu sync.Mutex
	var captions []string
	m := NewLoadingModal(func(s ModalState) {
		mu.Lock()
		captions = append(captions, s.Text)
		mu.Unlock()
	})

	done := SimulateScanProgress(m, time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scan simulation did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, captions, 5)
	require.Equal(t, "Scanning system directories...", captions[0])
	require.Equal(t, "Finalizing results...", captions[4])
	require.Equal(t, 100, m.Snapshot().Percent)
}
