package window

import (
	"fmt"

	"github.com/faiface/mainthread"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate    = 44100
	toneFrequency = 440
	toneVolume    = 0x20

	// the longest tone is 255 ticks of the 60Hz sound timer, a little over 4 seconds
	toneSeconds = 5
)

func (w *Window) openAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  1024,
	}

	var obtained sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, spec, &obtained, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}

	w.audio = id
	w.tone = squareWave(sampleRate*toneSeconds, sampleRate/toneFrequency, obtained.Silence, toneVolume)
	return nil
}

// Start queues the tone and starts the playback.
func (w *Window) Start() {
	if w.audio == 0 {
		return
	}

	mainthread.Call(func() {
		sdl.ClearQueuedAudio(w.audio)
		if err := sdl.QueueAudio(w.audio, w.tone); err != nil {
			w.logger.Error("Queueing tone failed", log.Err(err))
			return
		}
		sdl.PauseAudioDevice(w.audio, false)
	})
}

// Stop pauses the playback and drops the rest of the queued tone.
func (w *Window) Stop() {
	if w.audio == 0 {
		return
	}

	mainthread.Call(func() {
		sdl.PauseAudioDevice(w.audio, true)
		sdl.ClearQueuedAudio(w.audio)
	})
}

// squareWave returns unsigned 8-bit samples of a square wave with the given
// period in samples, oscillating around the silence value.
func squareWave(samples, period int, silence, volume uint8) []byte {
	wave := make([]byte, samples)
	half := max(period/2, 1)
	for i := range wave {
		if (i/half)%2 == 0 {
			wave[i] = silence + volume
		} else {
			wave[i] = silence - volume
		}
	}
	return wave
}
