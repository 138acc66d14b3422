package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw colliders and contact flags")
	levelName := flag.String("level", "sandbox", "level name in levels/ (basename, .json optional)")
	configName := flag.String("config", "physics.yaml", "physics config in prefabs/")
	watch := flag.Bool("watch", true, "reload prefabs, scripts and levels when they change on disk")
	zoom := flag.Float64("zoom", 2, "pixels per world pixel")
	flag.Parse()

	game, err := NewGame(Options{
		Level:  *levelName,
		Config: *configName,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(screenWidth * *zoom), int(screenHeight * *zoom))
	ebiten.SetWindowTitle("tilephysics sandbox")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
