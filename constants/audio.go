package constants

import "time"

// Eat Sound Timing
const (
	EatSoundDuration = 90 * time.Millisecond
	EatSoundAttack   = 5 * time.Millisecond
	EatSoundRelease  = 60 * time.Millisecond
)

// Crash Sound Timing
const (
	CrashSoundDuration = 350 * time.Millisecond
	CrashSoundAttack   = 5 * time.Millisecond
	CrashSoundRelease  = 250 * time.Millisecond
)

// High Score Sound Timing
const (
	HighScoreNote1Duration = 80 * time.Millisecond
	HighScoreNote2Duration = 240 * time.Millisecond
	HighScoreAttack        = 5 * time.Millisecond
	HighScoreNote1Release  = 40 * time.Millisecond
	HighScoreNote2Release  = 180 * time.Millisecond
)

// Speaker buffer
const (
	SpeakerBufferDuration = 100 * time.Millisecond
)
