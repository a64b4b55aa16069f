package wakey

import (
	"io"
	"math"

	"github.com/hajimehoshi/oto/v2"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// AudioSystem manages the procedural alarm sounds.
type AudioSystem struct {
	ctx         *oto.Context
	ready       chan struct{}
	sirenPlayer oto.Player
}

var globalAudio *AudioSystem

// InitAudio initializes the audio system. The program keeps working
// without sound if this fails.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// StartAlarmSiren plays the looping two-tone siren until stopped. This
// is the sound the user is tracing the corridor to silence.
func StartAlarmSiren() {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	if globalAudio.sirenPlayer != nil {
		globalAudio.sirenPlayer.Close()
	}
	player := globalAudio.ctx.NewPlayer(&sirenReader{})
	player.SetVolume(0.35)
	globalAudio.sirenPlayer = player
	player.Play()
}

// StopAlarmSiren cuts the siren off.
func StopAlarmSiren() {
	if globalAudio == nil || globalAudio.sirenPlayer == nil {
		return
	}
	globalAudio.sirenPlayer.Close()
	globalAudio.sirenPlayer = nil
}

// PlayWallBlip plays the short low buzz on a wall touch.
func PlayWallBlip() {
	playBuffer(renderWallBlip(), 0.5)
}

// PlaySuccessChime plays the ascending chime on reaching the goal.
func PlaySuccessChime() {
	playBuffer(renderSuccessChime(), 0.6)
}

func playBuffer(data []byte, volume float64) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	player := globalAudio.ctx.NewPlayer(&soundReader{data: data})
	player.SetVolume(volume)
	player.Play()
}

// sirenReader generates an endless two-tone siren: the pitch alternates
// every half second with a soft attack to avoid clicks.
type sirenReader struct {
	t float64
}

func (r *sirenReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	for i := 0; i < frames; i++ {
		phaseSec := math.Mod(r.t, 1.0)
		freq := 700.0
		if phaseSec >= 0.5 {
			freq = 920.0
		}
		// Soft edges at each tone boundary.
		edge := math.Min(math.Mod(phaseSec, 0.5)*40, 1.0)
		sample := math.Sin(2*math.Pi*freq*r.t) * edge * 0.8
		putStereoF32(p, i, sample)
		r.t += 1.0 / sampleRate
	}
	return frames * 8, nil
}

// soundReader streams a pre-rendered effect buffer once.
type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func renderWallBlip() []byte {
	const dur = 0.15
	frames := int(dur * sampleRate)
	buf := make([]byte, frames*8)
	for i := 0; i < frames; i++ {
		t := float64(i) / sampleRate
		progress := t / dur
		env := 1.0 - progress
		sample := math.Sin(2*math.Pi*180*t) * env * env
		putStereoF32(buf, i, sample)
	}
	return buf
}

func renderSuccessChime() []byte {
	notes := []float64{523.25, 659.25, 783.99} // C5 E5 G5
	const noteDur = 0.18
	frames := int(noteDur * sampleRate * float64(len(notes)))
	buf := make([]byte, frames*8)
	for i := 0; i < frames; i++ {
		t := float64(i) / sampleRate
		idx := int(t / noteDur)
		if idx >= len(notes) {
			idx = len(notes) - 1
		}
		local := math.Mod(t, noteDur) / noteDur
		env := math.Min(local*12, 1.0) * (1.0 - local)
		sample := math.Sin(2*math.Pi*notes[idx]*t) * env
		putStereoF32(buf, i, sample)
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo
// channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}
