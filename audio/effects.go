package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lixenwraith/vi-snake/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// waveTable samples one period of each shape at phase in [0, 1)
var waveTable = [...]func(phase float64) float64{
	WaveSine: func(p float64) float64 { return math.Sin(2 * math.Pi * p) },
	WaveSquare: func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	},
	WaveSaw:   func(p float64) float64 { return 2*p - 1 },
	WaveNoise: func(float64) float64 { return rand.Float64()*2 - 1 },
}

func silence(float64) float64 { return 0 }

// oscillator streams a fixed number of mono samples duplicated to both channels
type oscillator struct {
	sample    func(phase float64) float64
	step      float64 // Phase advance per sample
	phase     float64
	remaining int
}

// NewOscillator creates a streamer of wave at freq lasting duration
// Unknown wave types stream silence
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	sample := silence
	if wave >= 0 && int(wave) < len(waveTable) {
		sample = waveTable[wave]
	}
	return &oscillator{
		sample:    sample,
		step:      freq / float64(rate),
		remaining: rate.N(duration),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.remaining <= 0 {
			return i, false
		}
		v := o.sample(o.phase)
		samples[i] = [2]float64{v, v}

		o.phase += o.step
		o.phase -= math.Floor(o.phase)
		o.remaining--
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps gain up over attack and down over release, cutting the
// stream at its total length
type envelope struct {
	streamer     beep.Streamer
	pos          int
	attack       int
	releaseStart int
	release      int
	total        int
}

// NewEnvelope shapes s with a linear attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total, att, rel := rate.N(duration), rate.N(attack), rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: att + max(total-att-rel, 0),
		total:        total,
	}
}

// gain returns the multiplier at sample pos; release wins over attack when they overlap
func (e *envelope) gain(pos int) float64 {
	switch {
	case e.release > 0 && pos >= e.releaseStart:
		return max(float64(e.total-pos)/float64(e.release), 0)
	case pos < e.attack:
		return float64(pos) / float64(e.attack)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, false
		}
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// tone is an enveloped oscillator, the building block of every cue
func tone(freq float64, wave WaveType, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, attack, release, rate)
}

// scaled applies a linear gain through effects.Volume, zero or below is silent
func scaled(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// CreateEatSound generates a short blip with a quieter fifth above it
func CreateEatSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d, a, r := constants.EatSoundDuration, constants.EatSoundAttack, constants.EatSoundRelease

	mixed := beep.Mix(
		scaled(tone(660, WaveSquare, d, a, r, rate), 0.6),
		scaled(tone(990, WaveSine, d, a, r, rate), 0.4),
	)
	return scaled(mixed, cfg.EffectVolumes[SoundEat]*cfg.MasterVolume)
}

// CreateCrashSound generates a noise burst over a low saw rumble
func CreateCrashSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d, a, r := constants.CrashSoundDuration, constants.CrashSoundAttack, constants.CrashSoundRelease

	mixed := beep.Mix(
		scaled(tone(0, WaveNoise, d, a, r, rate), 0.5),
		scaled(tone(70, WaveSaw, d, a, r, rate), 0.5),
	)
	return scaled(mixed, cfg.EffectVolumes[SoundCrash]*cfg.MasterVolume)
}

// CreateHighScoreSound plays B5 then a longer E6
func CreateHighScoreSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	chime := beep.Seq(
		tone(987.77, WaveSquare, constants.HighScoreNote1Duration, constants.HighScoreAttack, constants.HighScoreNote1Release, rate),
		tone(1318.51, WaveSquare, constants.HighScoreNote2Duration, constants.HighScoreAttack, constants.HighScoreNote2Release, rate),
	)
	return scaled(chime, cfg.EffectVolumes[SoundHighScore]*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for soundType, nil for unknown types
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundEat:
		return CreateEatSound(cfg)
	case SoundCrash:
		return CreateCrashSound(cfg)
	case SoundHighScore:
		return CreateHighScoreSound(cfg)
	default:
		return nil
	}
}
