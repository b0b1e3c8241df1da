package app

import (
	"testing"

	"github.com/Faultbox/meshview/internal/engine/model"
)

func testClips() []model.AnimationClip {
	return []model.AnimationClip{
		{Name: "idle", DurationSeconds: 2, TicksPerSecond: 24},
		{Name: "walk", DurationSeconds: 1, TicksPerSecond: 24},
		{Name: "run", DurationSeconds: 0.5, TicksPerSecond: 24},
	}
}

func TestPlaybackEmpty(t *testing.T) {
	p := NewPlayback(nil)
	if p.HasClips() {
		t.Error("no clips expected")
	}
	if p.Playing() {
		t.Error("clipless playback must not run")
	}
	p.Step(1)
	p.Advance(1)
	p.TogglePause()
	if p.ClipName() != "" || p.Elapsed() != 0 {
		t.Error("clipless playback must stay inert")
	}
}

func TestPlaybackStepWraps(t *testing.T) {
	p := NewPlayback(testClips())
	if p.ClipName() != "idle" {
		t.Errorf("expected first clip active, got %q", p.ClipName())
	}

	p.Step(1)
	if p.ClipName() != "walk" {
		t.Errorf("expected walk, got %q", p.ClipName())
	}

	p.Step(-1)
	p.Step(-1)
	if p.ClipName() != "run" {
		t.Errorf("stepping back from the first clip must wrap to the last, got %q", p.ClipName())
	}

	p.Step(1)
	if p.ClipName() != "idle" {
		t.Errorf("stepping forward from the last clip must wrap to the first, got %q", p.ClipName())
	}
}

func TestPlaybackStepRestartsClip(t *testing.T) {
	p := NewPlayback(testClips())
	p.Advance(1.5)
	p.Step(1)
	if p.Elapsed() != 0 {
		t.Errorf("switching clips must restart, got %f", p.Elapsed())
	}
}

func TestPlaybackAdvanceWraps(t *testing.T) {
	p := NewPlayback(testClips())
	p.Advance(2.5)
	if got := p.Elapsed(); got < 0.49 || got > 0.51 {
		t.Errorf("2.5s into a 2s clip should wrap to 0.5, got %f", got)
	}
}

func TestPlaybackAdvanceWrapsMultipleTimes(t *testing.T) {
	p := NewPlayback(testClips())
	p.Step(-1) // run, 0.5s
	p.Advance(1.7)
	if got := p.Elapsed(); got < 0.19 || got > 0.21 {
		t.Errorf("1.7s into a 0.5s clip should wrap to 0.2, got %f", got)
	}
}

func TestPlaybackPause(t *testing.T) {
	p := NewPlayback(testClips())
	p.TogglePause()
	if p.Playing() {
		t.Error("expected paused")
	}
	p.Advance(1)
	if p.Elapsed() != 0 {
		t.Error("paused playback must not advance")
	}
	p.TogglePause()
	p.Advance(1)
	if p.Elapsed() != 1 {
		t.Errorf("resumed playback must advance, got %f", p.Elapsed())
	}
}
