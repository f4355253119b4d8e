package state

import "time"

// Speed limits for replay, as multiples of simulated time.
const (
	MinSpeed     = 0.25
	MaxSpeed     = 64
	DefaultSpeed = 4
)

// PlaybackState drives the replay clock over simulated time.
type PlaybackState struct {
	CurrentTime float64 // Simulated seconds shown on screen
	MaxTime     float64 // Time of the last recorded frame
	Tick        float64 // Simulated seconds per frame
	Speed       float64
	Playing     bool
	lastUpdate  time.Time
}

// NewPlaybackState creates a paused clock at zero. tick is the
// simulator's tick interval and is used by the single-step controls.
func NewPlaybackState(maxTime, tick float64) *PlaybackState {
	if tick <= 0 {
		tick = 0.1
	}
	return &PlaybackState{
		MaxTime:    maxTime,
		Tick:       tick,
		Speed:      DefaultSpeed,
		lastUpdate: time.Now(),
	}
}

// TogglePlay starts or pauses playback. Starting at the end rewinds.
func (p *PlaybackState) TogglePlay() {
	if p.Playing {
		p.Pause()
		return
	}
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = 0
	}
	p.Play()
}

func (p *PlaybackState) Play() {
	p.Playing = true
	p.lastUpdate = time.Now()
}

func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to the first frame and pauses.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves the clock by the wall time since the last call, scaled by
// Speed. Playback stops at MaxTime.
func (p *PlaybackState) Advance() {
	p.advanceTo(time.Now())
}

func (p *PlaybackState) advanceTo(now time.Time) {
	if !p.Playing {
		p.lastUpdate = now
		return
	}
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.CurrentTime += elapsed * p.Speed
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime seeks, clamped to [0, MaxTime].
func (p *PlaybackState) SetTime(t float64) {
	p.CurrentTime = min(max(t, 0), p.MaxTime)
}

// StepForward pauses and moves one frame ahead.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetTime(p.CurrentTime + p.Tick)
}

// StepBack pauses and moves one frame back.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetTime(p.CurrentTime - p.Tick)
}

// SetSpeed sets the replay multiplier, clamped to [MinSpeed, MaxSpeed].
func (p *PlaybackState) SetSpeed(speed float64) {
	p.Speed = min(max(speed, MinSpeed), MaxSpeed)
}

// Faster doubles the speed.
func (p *PlaybackState) Faster() { p.SetSpeed(p.Speed * 2) }

// Slower halves the speed.
func (p *PlaybackState) Slower() { p.SetSpeed(p.Speed / 2) }

// Progress returns the position in the replay as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
