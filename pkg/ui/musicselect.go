package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Track is one selectable music entry: a display name and the id the
// audio engine understands.
type Track struct {
	Name string
	ID   string
}

// DefaultTracks is the shipped race soundtrack list.
func DefaultTracks() []Track {
	return []Track{
		{Name: "CRUISE FM", ID: "cruise"},
		{Name: "NIGHT DRIVE", ID: "night"},
		{Name: "TURBO BOOGIE", ID: "turbo"},
	}
}

// MusicSelectScreen lets the player pick a race track. Moving the
// highlight previews the track through the supplied callback; the
// screen itself never touches the audio engine.
type MusicSelectScreen struct {
	tracks    []Track
	index     int
	onPreview func(trackID string)
}

// NewMusicSelectScreen builds the selector. onPreview may be nil.
func NewMusicSelectScreen(tracks []Track, onPreview func(trackID string)) *MusicSelectScreen {
	return &MusicSelectScreen{tracks: tracks, onPreview: onPreview}
}

// Update reads input and reports the selection outcome for this frame.
func (ms *MusicSelectScreen) Update() Outcome {
	moved := false
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		ms.index = (ms.index + len(ms.tracks) - 1) % len(ms.tracks)
		moved = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		ms.index = (ms.index + 1) % len(ms.tracks)
		moved = true
	}
	if moved && ms.onPreview != nil {
		ms.onPreview(ms.tracks[ms.index].ID)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return OutcomeSelected
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return OutcomeCancelled
	}
	return OutcomePending
}

// Selected returns the highlighted track.
func (ms *MusicSelectScreen) Selected() Track { return ms.tracks[ms.index] }

// Draw renders the selector.
func (ms *MusicSelectScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 20, 35, 255})
	drawCenteredText(screen, "SELECT MUSIC", 60, 4, color.RGBA{255, 200, 50, 255})

	y := 160.0
	for i, t := range ms.tracks {
		clr := color.RGBA{180, 180, 200, 255}
		label := t.Name
		if i == ms.index {
			clr = color.RGBA{100, 255, 100, 255}
			label = "> " + label + " <"
		}
		drawCenteredText(screen, label, y, 2, clr)
		y += 50
	}

	drawCenteredText(screen, "ENTER: SELECT   UP/DOWN: PREVIEW",
		float64(screen.Bounds().Dy())-60, 1.5, color.RGBA{150, 200, 255, 255})
}
