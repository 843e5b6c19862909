package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/drive/pkg/audio"
	"github.com/golangdaddy/drive/pkg/game"
	"github.com/golangdaddy/drive/pkg/tuning"
)

// App implements ebiten.Game and delegates everything to the drive
// session.
type App struct {
	session *game.Session
	width   int
	height  int
}

// Update proceeds the game state. Update is called every tick (1/60 [s]
// by default).
func (a *App) Update() error {
	return a.session.Update()
}

// Draw draws the game screen.
func (a *App) Draw(screen *ebiten.Image) {
	a.session.Draw(screen)
}

// Layout returns the logical screen size regardless of the window size.
func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return a.width, a.height
}

func main() {
	cfg := tuning.Load()

	sound, err := audio.NewSystem()
	if err != nil {
		// No audio device is not fatal; the game runs silent.
		log.Printf("audio unavailable: %v", err)
		sound = nil
	}

	var music game.MusicPlayer
	if sound != nil {
		music = sound
	}

	app := &App{
		session: game.NewSession(cfg, music),
		width:   int(cfg.Road.ScreenWidth),
		height:  int(cfg.Road.ScreenHeight),
	}

	ebiten.SetWindowSize(app.width*2, app.height*2)
	ebiten.SetWindowTitle("Drive")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
