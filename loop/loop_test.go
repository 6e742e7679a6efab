package loop_test

import (
	"testing"
	"time"

	"github.com/db47h/sprig/loop"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t     time.Time
	steps []time.Duration
}

func (c *fakeClock) now() time.Time {
	if len(c.steps) > 0 {
		c.t = c.t.Add(c.steps[0])
		c.steps = c.steps[1:]
	}
	return c.t
}

type recorder struct {
	frames  int
	updates []time.Duration
	draws   [][2]time.Duration
	calls   []string
}

func (r *recorder) ProcessEvents() bool {
	r.frames++
	r.calls = append(r.calls, "events")
	return r.frames > 3
}

func (r *recorder) Update(dt time.Duration) { r.updates = append(r.updates, dt) }

func (r *recorder) Draw(ft, partial time.Duration) {
	r.draws = append(r.draws, [2]time.Duration{ft, partial})
	r.calls = append(r.calls, "draw")
}

func (r *recorder) FrameStart(time.Time) { r.calls = append(r.calls, "start") }
func (r *recorder) Present()             { r.calls = append(r.calls, "present") }

func TestFixedStep(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0), steps: []time.Duration{0, 10 * time.Millisecond, 3 * time.Millisecond, time.Hour}}
	l := loop.FixedStep{DT: 4 * time.Millisecond, MaxFT: 20 * time.Millisecond}
	l.Clock = clk.now

	var r recorder
	l.Run(&r)

	// frame 1: 10ms -> 2 updates, 2ms left
	// frame 2: 3ms -> 5ms accumulated, 1 update, 1ms left
	// frame 3: clamped to 20ms -> 21ms accumulated, 5 updates, 1ms left
	assert.Len(t, r.updates, 8)
	for _, u := range r.updates {
		assert.Equal(t, 4*time.Millisecond, u)
	}
	ms := time.Millisecond
	assert.Equal(t, [][2]time.Duration{{10 * ms, 2 * ms}, {3 * ms, 1 * ms}, {20 * ms, 1 * ms}}, r.draws)
	assert.Equal(t, loop.Stats{Frames: 3, Updates: 8, Dropped: time.Hour - 20*ms}, l.Stats())
}

func TestFrameOrder(t *testing.T) {
	l := loop.FixedStep{}
	l.Clock = func() time.Time { return time.Unix(0, 0) }
	var r recorder
	l.Run(&r)
	frame := []string{"events", "start", "draw", "present"}
	var want []string
	for i := 0; i < 3; i++ {
		want = append(want, frame...)
	}
	want = append(want, "events")
	assert.Equal(t, want, r.calls)
}

func TestFixedStepDefaults(t *testing.T) {
	var l loop.FixedStep
	l.Clock = func() time.Time { return time.Unix(0, 0) }
	var r recorder
	l.Run(&r)
	assert.Equal(t, loop.DefaultDT, l.DT)
	assert.Equal(t, loop.DefaultMaxFT, l.MaxFT)
	assert.Empty(t, r.updates)
	assert.Len(t, r.draws, 3)
}

type simple struct {
	n, updates, draws, presents int
}

func (s *simple) ProcessEvents() bool { s.n++; return s.n > 5 }
func (s *simple) Update()             { s.updates++ }
func (s *simple) Draw()               { s.draws++ }
func (s *simple) Present()            { s.presents++ }

func TestSimple(t *testing.T) {
	var (
		l loop.Simple
		s simple
	)
	l.Run(&s)
	assert.Equal(t, 5, s.updates)
	assert.Equal(t, 5, s.draws)
	assert.Equal(t, 5, s.presents)
	assert.Equal(t, loop.Stats{Frames: 5, Updates: 5}, l.Stats())

	// counters are reset by Run
	s = simple{n: 3}
	l.Run(&s)
	assert.Equal(t, uint64(2), l.Stats().Frames)
}
