package audio

import (
	"math"
	"math/rand"
)

// generateEffect synthesizes a one-shot sound effect by name.
func generateEffect(name string) []float32 {
	switch name {
	case "crash":
		return genNoiseBurst(0.35, 0.9)
	case "thud":
		return genThud()
	case "skid":
		return genSkid()
	case "horn":
		return genTone(440, 0.25, 0.5, waveSquare)
	case "beep":
		return genTone(880, 0.08, 0.4, waveSquare)
	case "rev":
		return genRev()
	case "fanfare":
		return genFanfare()
	default:
		return nil
	}
}

type waveform func(phase float64) float64

func waveSine(p float64) float64 { return math.Sin(2 * math.Pi * p) }

func waveSquare(p float64) float64 {
	if math.Mod(p, 1) < 0.5 {
		return 1
	}
	return -1
}

func waveSaw(p float64) float64 { return 2*math.Mod(p, 1) - 1 }

// genTone renders one note with a quick attack and linear release.
func genTone(freq, seconds, gain float64, wave waveform) []float32 {
	n := int(seconds * sampleRate)
	out := make([]float32, 0, n*channelCount)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		env := envelope(float64(i)/float64(n))
		v := float32(wave(freq*t) * gain * env)
		out = append(out, v, v)
	}
	return out
}

func genNoiseBurst(seconds, gain float64) []float32 {
	n := int(seconds * sampleRate)
	out := make([]float32, 0, n*channelCount)
	for i := 0; i < n; i++ {
		decay := 1 - float64(i)/float64(n)
		v := float32((rand.Float64()*2 - 1) * gain * decay * decay)
		out = append(out, v, v)
	}
	return out
}

// genThud is a short low sine with fast decay, for cone and debris hits.
func genThud() []float32 {
	n := int(0.15 * sampleRate)
	out := make([]float32, 0, n*channelCount)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		decay := 1 - float64(i)/float64(n)
		freq := 90.0 - 30*float64(i)/float64(n)
		v := float32(math.Sin(2*math.Pi*freq*t) * 0.8 * decay)
		out = append(out, v, v)
	}
	return out
}

// genSkid sweeps filtered noise downward, for slips and oil slicks.
func genSkid() []float32 {
	n := int(0.4 * sampleRate)
	out := make([]float32, 0, n*channelCount)
	prev := 0.0
	for i := 0; i < n; i++ {
		decay := 1 - float64(i)/float64(n)
		// Crude one-pole lowpass over white noise, opening with time.
		alpha := 0.1 + 0.5*decay
		prev = prev*(1-alpha) + (rand.Float64()*2-1)*alpha
		v := float32(prev * 0.7 * decay)
		out = append(out, v, v)
	}
	return out
}

// genRev is a rising saw sweep, used when the race starts.
func genRev() []float32 {
	n := int(0.5 * sampleRate)
	out := make([]float32, 0, n*channelCount)
	phase := 0.0
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n)
		freq := 60 + 180*frac
		phase += freq / sampleRate
		v := float32(waveSaw(phase) * 0.5 * envelope(frac))
		out = append(out, v, v)
	}
	return out
}

// genFanfare is a three-note rise for the game-over screen.
func genFanfare() []float32 {
	notes := []float64{523.25, 659.25, 783.99}
	var out []float32
	for _, f := range notes {
		out = append(out, genTone(f, 0.18, 0.5, waveSquare)...)
	}
	return out
}

func envelope(frac float64) float64 {
	const attack = 0.05
	if frac < attack {
		return frac / attack
	}
	return 1 - (frac-attack)/(1-attack)
}

// track riffs: each track is a chord progression rendered as square-wave
// eighth notes over a sine bass.
var trackRiffs = map[string][]float64{
	"cruise": {261.63, 329.63, 392.00, 329.63, 293.66, 349.23, 440.00, 349.23},
	"night":  {220.00, 261.63, 329.63, 261.63, 196.00, 246.94, 293.66, 246.94},
	"turbo":  {329.63, 392.00, 493.88, 392.00, 349.23, 440.00, 523.25, 440.00},
	"final":  {392.00, 493.88, 587.33, 493.88, 440.00, 523.25, 659.25, 523.25},
}

// renderTrackBars renders the named riff repeated for the given number
// of bars. Unknown tracks fall back to the cruise riff.
func renderTrackBars(track string, bars int) []float32 {
	riff, ok := trackRiffs[track]
	if !ok {
		riff = trackRiffs["cruise"]
	}
	const noteSeconds = 0.22
	var out []float32
	for b := 0; b < bars; b++ {
		for _, f := range riff {
			note := renderNote(f, noteSeconds)
			out = append(out, note...)
		}
	}
	return out
}

func renderNote(freq, seconds float64) []float32 {
	n := int(seconds * sampleRate)
	out := make([]float32, 0, n*channelCount)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		env := envelope(float64(i) / float64(n))
		lead := waveSquare(freq*t) * 0.22
		bass := waveSine(freq/2*t) * 0.18
		v := float32((lead + bass) * env)
		out = append(out, v, v)
	}
	return out
}
