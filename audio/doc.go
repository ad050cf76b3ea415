// Package audio synthesizes the reseed and screenshot feedback cues.
//
// Cues are generated procedurally and played through the beep speaker. A
// machine without an audio device still runs the sketch: callers log the
// Initialize error and keep the player uninitialized.
package audio
