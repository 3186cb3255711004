package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundEat       SoundType = iota // Food eaten
	SoundCrash                      // Wall or self collision
	SoundHighScore                  // Best score raised
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundEat:
		return "eat"
	case SoundCrash:
		return "crash"
	case SoundHighScore:
		return "highscore"
	default:
		return "unknown"
	}
}

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns enabled audio at half volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundEat:       0.8,
			SoundCrash:     1.0,
			SoundHighScore: 0.6,
		},
		SampleRate: 44100,
	}
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled by configuration")
)
