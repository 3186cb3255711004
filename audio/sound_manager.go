package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
)

// SoundManager plays one-shot cues for game events
// Every method is safe to call before Initialize or after Cleanup
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager, nil cfg loads defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
// Returns ErrAudioDisabled when configuration turns audio off
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.SpeakerBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// SetMuted silences new cues without closing the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Play queues the cue for soundType on the mixer
func (sm *SoundManager) Play(soundType SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	streamer := GetSoundEffect(soundType, sm.cfg)
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

func (sm *SoundManager) PlayEat()       { sm.Play(SoundEat) }
func (sm *SoundManager) PlayCrash()     { sm.Play(SoundCrash) }
func (sm *SoundManager) PlayHighScore() { sm.Play(SoundHighScore) }

// HandleEvent maps game events to cues
func (sm *SoundManager) HandleEvent(ev engine.Event) {
	switch ev.Type {
	case engine.EventAte:
		sm.PlayEat()
	case engine.EventHighScore:
		sm.PlayHighScore()
	case engine.EventCrash:
		sm.PlayCrash()
	}
}

// Pending returns the number of cues still streaming
func (sm *SoundManager) Pending() int {
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}
