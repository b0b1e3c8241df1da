package app

import "github.com/Faultbox/meshview/internal/engine/model"

// Playback tracks which animation clip is selected and how far into it the
// viewer is. Models without clips get a permanently idle playback.
type Playback struct {
	clips   []model.AnimationClip
	active  int
	elapsed float64
	playing bool
}

// NewPlayback creates playback state over a model's clips. Playback starts
// running on the first clip when any exist.
func NewPlayback(clips []model.AnimationClip) *Playback {
	return &Playback{
		clips:   clips,
		playing: len(clips) > 0,
	}
}

// HasClips reports whether there is anything to play.
func (p *Playback) HasClips() bool {
	return len(p.clips) > 0
}

// ClipName returns the active clip's name, or empty without clips.
func (p *Playback) ClipName() string {
	if !p.HasClips() {
		return ""
	}
	return p.clips[p.active].Name
}

// Step moves to the next (+1) or previous (-1) clip, wrapping at the ends,
// and restarts it.
func (p *Playback) Step(direction int) {
	if !p.HasClips() {
		return
	}
	n := len(p.clips)
	p.active = ((p.active+direction)%n + n) % n
	p.elapsed = 0
}

// Advance moves the clock forward, wrapping at the clip's duration. Paused
// or clipless playback ignores the tick.
func (p *Playback) Advance(dt float64) {
	if !p.playing || !p.HasClips() {
		return
	}
	duration := float64(p.clips[p.active].DurationSeconds)
	if duration <= 0 {
		return
	}
	p.elapsed += dt
	for p.elapsed >= duration {
		p.elapsed -= duration
	}
}

// Elapsed returns seconds into the active clip.
func (p *Playback) Elapsed() float64 {
	return p.elapsed
}

// TogglePause flips between playing and paused.
func (p *Playback) TogglePause() {
	if p.HasClips() {
		p.playing = !p.playing
	}
}

// Playing reports whether the clock advances.
func (p *Playback) Playing() bool {
	return p.playing
}
