package carousel

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{Title: "Jeevan Verse", Image: "/assets/projects/jeevanverse.png"},
		{Title: "Spending Diary", Image: "/assets/projects/spending-diary.png"},
		{Title: "Muse", Image: "/assets/projects/Muse.png"},
	}
}

func uniformWidths(n int, w float64) []float64 {
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = w
	}
	return widths
}

func TestAdvance_OffsetAndRotations(t *testing.T) {
	steps := []float64{0.5, 1, 2, 3, 7, 384, 1000}
	widths := []float64{10, 384, 400}
	frames := []int{0, 1, 9, 10, 11, 383, 384, 385, 1500}

	for _, s := range steps {
		for _, w := range widths {
			t.Run(fmt.Sprintf("step=%g width=%g", s, w), func(t *testing.T) {
				strip := uniformWidths(9, w)
				for _, k := range frames {
					st := State{}
					for i := 0; i < k; i++ {
						st = Advance(st, s, strip)
					}

					total := float64(k) * s
					assert.InDelta(t, math.Mod(total, w), st.Offset, 1e-9, "offset after %d frames", k)
					assert.Equal(t, int(math.Floor(total/w)), st.Rotations, "rotations after %d frames", k)
					assert.Equal(t, st.Rotations%len(strip), st.Lead, "lead after %d frames", k)
				}
			})
		}
	}
}

func TestAdvance_ResetsAtLeadWidth(t *testing.T) {
	widths := uniformWidths(3, 4)

	st := State{}
	for i := 0; i < 3; i++ {
		st = Advance(st, 1, widths)
	}
	assert.Equal(t, 3.0, st.Offset)
	assert.Equal(t, 0, st.Lead)

	st = Advance(st, 1, widths)
	assert.Equal(t, 0.0, st.Offset, "offset resets when it reaches the lead width")
	assert.Equal(t, 1, st.Lead)
	assert.Equal(t, 1, st.Rotations)
}

func TestAdvance_UnevenWidths(t *testing.T) {
	widths := []float64{5, 10, 5}

	st := Advance(State{}, 16, widths)
	assert.Equal(t, 1.0, st.Offset)
	assert.Equal(t, 2, st.Lead)
	assert.Equal(t, 2, st.Rotations)

	st = Advance(st, 4, widths)
	assert.Equal(t, 0.0, st.Offset)
	assert.Equal(t, 0, st.Lead, "lead wraps around to the first item")
	assert.Equal(t, 3, st.Rotations)
}

func TestAdvance_NoOp(t *testing.T) {
	widths := uniformWidths(3, 10)
	start := State{Offset: 4, Lead: 1, Rotations: 7}

	tests := []struct {
		name   string
		state  State
		delta  float64
		widths []float64
	}{
		{"paused", State{Offset: 4, Lead: 1, Rotations: 7, Paused: true}, 1, widths},
		{"zero delta", start, 0, widths},
		{"negative delta", start, -3, widths},
		{"empty strip", start, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.state, Advance(tt.state, tt.delta, tt.widths))
		})
	}
}

func TestAdvance_ZeroWidthTerminates(t *testing.T) {
	st := Advance(State{}, 50, []float64{0, 10})
	assert.Equal(t, 50.0, st.Offset)
	assert.Equal(t, 0, st.Rotations)
}

func TestAdvance_PauseResumeIsIdempotent(t *testing.T) {
	widths := uniformWidths(9, 384)

	run := func(frames int, pauseAt, pauseFor int) State {
		st := State{}
		for i := 0; i < frames; i++ {
			st.Paused = i >= pauseAt && i < pauseAt+pauseFor
			st = Advance(st, 1, widths)
		}
		st.Paused = false
		return st
	}

	withPause := run(1000+250, 300, 250)
	withoutPause := run(1000, 0, 0)

	assert.Equal(t, withoutPause, withPause)
}

func TestStrip_Replicates(t *testing.T) {
	items := testItems()
	strip := NewStrip(items, DefaultItemWidth)

	require.Equal(t, len(items)*Replicas, strip.Len())
	got := strip.Items()
	for i := range got {
		assert.Equal(t, items[i%len(items)], got[i])
	}
	assert.Equal(t, uniformWidths(strip.Len(), DefaultItemWidth), strip.Widths())
	assert.Equal(t, items, strip.Base())
}

func TestStrip_OrderPreservesMultiset(t *testing.T) {
	strip := NewStrip(testItems(), 10)

	count := func(items []Item) map[string]int {
		m := make(map[string]int)
		for _, item := range items {
			m[item.Title]++
		}
		return m
	}
	want := count(strip.Items())

	st := State{}
	for frame := 0; frame < 200; frame++ {
		st = strip.Advance(st, 3)
		order := strip.Order(st)
		require.Len(t, order, strip.Len())
		assert.Equal(t, want, count(order))

		// the order is a rotation of the backing list starting at the lead
		items := strip.Items()
		for i := range order {
			assert.Equal(t, items[(st.Lead+i)%len(items)], order[i])
		}
	}
}

func TestStrip_Empty(t *testing.T) {
	strip := NewStrip(nil, 10)
	assert.Equal(t, 0, strip.Len())
	assert.Nil(t, strip.Order(State{Lead: 3}))
	assert.Equal(t, State{}, strip.Advance(State{}, 1))
}
