package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/nowcast/internal/frames"
)

func newSource(t *testing.T, cfg frames.Config) frames.Source {
	t.Helper()
	b, err := frames.NewBuilder(cfg)
	require.NoError(t, err)
	return frames.NewCache(b, 0)
}

func newSession(t *testing.T, cfg frames.Config) *Session {
	t.Helper()
	s, err := NewSession(newSource(t, cfg), "")
	require.NoError(t, err)
	return s
}

func TestNewSession_Defaults(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	snap := s.Snapshot()

	assert.Equal(t, DefaultDate, snap.Date)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, ModeStandard, snap.Mode)
	assert.False(t, snap.Fullscreen)
	assert.False(t, snap.Playing)
	assert.Equal(t, 9, snap.Total())
	assert.Equal(t, "/images/20250403/actual_2100.jpg", snap.Image())
}

func TestNewSession_RejectsBadInput(t *testing.T) {
	_, err := NewSession(nil, "")
	require.Error(t, err)

	_, err = NewSession(newSource(t, frames.DefaultConfig()), "2025/04/03")
	require.Error(t, err)
}

func TestStep_BoundedAtBothEnds(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	last := s.Snapshot().Total() - 1

	for i := 0; i < last; i++ {
		require.True(t, s.Step(1))
		assert.Equal(t, i+1, s.Snapshot().Index)
	}
	assert.False(t, s.Step(1), "next at the last frame is a no-op")
	assert.Equal(t, last, s.Snapshot().Index)
	assert.False(t, s.Snapshot().CanNext())

	for i := last; i > 0; i-- {
		require.True(t, s.Step(-1))
		assert.Equal(t, i-1, s.Snapshot().Index)
	}
	assert.False(t, s.Step(-1), "previous at the first frame is a no-op")
	assert.Equal(t, 0, s.Snapshot().Index)
}

func TestPrevAtStartIsDisabled(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())

	assert.False(t, s.Snapshot().CanPrev())
	assert.False(t, s.Step(-1))
	assert.Equal(t, 0, s.Snapshot().Index)
	assert.False(t, s.Snapshot().CanPrev())
}

func TestSelectIndex_Clamps(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())

	assert.True(t, s.SelectIndex(4))
	assert.Equal(t, 4, s.Snapshot().Index)
	assert.False(t, s.SelectIndex(4))

	s.SelectIndex(100)
	assert.Equal(t, 8, s.Snapshot().Index)
	s.SelectIndex(-3)
	assert.Equal(t, 0, s.Snapshot().Index)
}

func TestChangeDate_ResetsIndex(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())

	for _, start := range []int{0, 3, 8} {
		s.SelectIndex(start)
		require.NoError(t, s.ChangeDate("2025-07-21"))
		snap := s.Snapshot()
		assert.Equal(t, 0, snap.Index, "from index %d", start)
		assert.Equal(t, "2025-07-21", snap.Date)
		assert.Equal(t, "/images/20250721/actual_2100.jpg", snap.Image())
		assert.Equal(t, "Jul 21", snap.Current().DisplayDate)
	}
}

func TestChangeDate_FailureLeavesSessionUntouched(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	s.SelectIndex(5)
	before := s.Snapshot()

	require.Error(t, s.ChangeDate("not-a-date"))
	assert.Equal(t, before, s.Snapshot())
}

func TestSetModeAndFullscreen(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	s.SelectIndex(2)

	s.SetMode(ModeVideo)
	snap := s.Snapshot()
	assert.Equal(t, ModeVideo, snap.Mode)
	assert.Equal(t, 2, snap.Index)
	assert.False(t, snap.Playing)

	s.ToggleFullscreen()
	snap = s.Snapshot()
	assert.True(t, snap.Fullscreen)
	assert.Equal(t, ModeVideo, snap.Mode)
	assert.Equal(t, 2, snap.Index)

	s.ToggleFullscreen()
	assert.False(t, s.Snapshot().Fullscreen)
}

func TestPlay_OnlyInVideoMode(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())

	assert.False(t, s.Play())
	assert.False(t, s.Snapshot().Playing)

	s.SetMode(ModeVideo)
	assert.True(t, s.Play())
	assert.True(t, s.Snapshot().Playing)
}

func TestTick_PlaysForwardOnceAndStops(t *testing.T) {
	s := newSession(t, frames.Variant13())
	s.SetMode(ModeVideo)
	require.True(t, s.Play())

	prev := s.Snapshot().Index
	for s.Playing() {
		require.True(t, s.Tick(s.Generation()))
		idx := s.Snapshot().Index
		require.Greater(t, idx, prev, "ticks strictly increase the index")
		prev = idx
	}
	snap := s.Snapshot()
	assert.Equal(t, 12, snap.Index)
	assert.False(t, snap.Playing)

	// Further ticks, whatever generation they carry, change nothing.
	assert.False(t, s.Tick(s.Generation()))
	assert.False(t, s.Tick(s.Generation()-1))
	assert.Equal(t, 12, s.Snapshot().Index)
}

func TestTick_StaleGenerationIgnored(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	s.SetMode(ModeVideo)
	s.Play()
	stale := s.Generation()

	s.Pause()
	s.Play()
	assert.False(t, s.Tick(stale))
	assert.Equal(t, 0, s.Snapshot().Index)

	assert.True(t, s.Tick(s.Generation()))
	assert.Equal(t, 1, s.Snapshot().Index)
}

func TestTick_WrapsWhenStillPlayingAtEnd(t *testing.T) {
	// The wrap rule only shows if playback survives at the last frame,
	// which the stop rule prevents; force that state directly.
	s := newSession(t, frames.DefaultConfig())
	s.SetMode(ModeVideo)
	s.index = 8
	s.playing = true

	require.True(t, s.Tick(s.generation))
	assert.Equal(t, 0, s.Snapshot().Index)
	assert.True(t, s.Snapshot().Playing)
}

func TestManualStepToEndStopsPlayback(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	s.SetMode(ModeVideo)
	s.SelectIndex(7)
	s.Play()
	gen := s.Generation()

	s.Step(1)
	assert.False(t, s.Playing())
	assert.NotEqual(t, gen, s.Generation())
	assert.False(t, s.Tick(gen))
	assert.Equal(t, 8, s.Snapshot().Index)
}

func TestPlayAtLastFrameStopsImmediately(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	s.SetMode(ModeVideo)
	s.SelectIndex(8)

	assert.False(t, s.Play())
	assert.False(t, s.Playing())
}

func TestLeavingVideoModeStopsPlayback(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	s.SetMode(ModeVideo)
	s.Play()
	gen := s.Generation()
	s.Tick(gen)

	s.SetMode(ModeStandard)
	assert.False(t, s.Playing())
	assert.False(t, s.Tick(gen))
	assert.Equal(t, 1, s.Snapshot().Index)
}

func TestTogglePlay(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	s.SetMode(ModeVideo)

	assert.True(t, s.TogglePlay())
	assert.False(t, s.TogglePlay())
	assert.False(t, s.Playing())
}

func TestSnapshot_IsReadOnly(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	snap := s.Snapshot()
	snap.Sequence.Images[0] = "/elsewhere.jpg"
	snap.Index = 4

	again := s.Snapshot()
	assert.Equal(t, "/images/20250403/actual_2100.jpg", again.Image())
	assert.Equal(t, 0, again.Index)
}

func TestSnapshot_Progress(t *testing.T) {
	s := newSession(t, frames.DefaultConfig())
	assert.Zero(t, s.Snapshot().Progress())
	s.SelectIndex(4)
	assert.InDelta(t, 0.5, s.Snapshot().Progress(), 1e-9)
	assert.Equal(t, 5, s.Snapshot().FrameNumber())
	s.SelectIndex(8)
	assert.InDelta(t, 1.0, s.Snapshot().Progress(), 1e-9)

	single := frames.DefaultConfig()
	single.Steps = 1
	single.ActualSteps = 1
	one := newSession(t, single)
	assert.Zero(t, one.Snapshot().Progress())
	assert.False(t, one.Snapshot().CanNext())
}
