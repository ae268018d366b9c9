// Command gonescore runs a cartridge with an ebiten-backed window: the
// console core itself has no windowing or input dependency, so this is the
// thinnest possible host that can drive it interactively.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/halvorsen-dev/gonescore/cartridge"
	"github.com/halvorsen-dev/gonescore/controller"
	"github.com/halvorsen-dev/gonescore/nes"
	"github.com/halvorsen-dev/gonescore/ppu"
)

var romFile = flag.String("rom", "", "path to an iNES ROM to run")

func main() {
	flag.Parse()

	cart, err := cartridge.Load(*romFile)
	if err != nil {
		log.Fatalf("couldn't load ROM %q: %v", *romFile, err)
	}

	g := &game{core: nes.New(cart)}

	ebiten.SetWindowSize(ppu.FrameWidth*3, ppu.FrameHeight*3)
	ebiten.SetWindowTitle("gonescore")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// game adapts a *nes.Core to ebiten.Game: one RunFrame per Update, a
// framebuffer blit per Draw, and keyboard state sampled into controller
// port 1 per frame.
type game struct {
	core  *nes.Core
	frame nes.Framebuffer
	image *ebiten.Image
}

var keymap = []struct {
	key ebiten.Key
	btn controller.Button
}{
	{ebiten.KeyA, controller.A},
	{ebiten.KeyB, controller.B},
	{ebiten.KeySpace, controller.Select},
	{ebiten.KeyEnter, controller.Start},
	{ebiten.KeyUp, controller.Up},
	{ebiten.KeyDown, controller.Down},
	{ebiten.KeyLeft, controller.Left},
	{ebiten.KeyRight, controller.Right},
}

func (g *game) Update() error {
	for _, k := range keymap {
		g.core.SetButton(nes.Player1, k.btn, ebiten.IsKeyPressed(k.key))
	}
	g.frame = g.core.RunFrame()
	// A fatal core error (an illegal opcode) leaves the processor's state
	// undefined; returning it here stops ebiten's game loop and surfaces
	// the abort to main's log.Fatal instead of spinning forever on
	// a dead CPU.
	return g.core.Err()
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(ppu.FrameWidth, ppu.FrameHeight)
	}
	g.image.WritePixels(rgbToRGBA(g.frame))
	screen.DrawImage(g.image, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.FrameWidth, ppu.FrameHeight
}

// rgbToRGBA expands the core's packed RGB framebuffer into the RGBA bytes
// ebiten.Image.WritePixels expects, with alpha forced opaque.
func rgbToRGBA(rgb []uint8) []uint8 {
	out := make([]uint8, len(rgb)/3*4)
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		out[j] = rgb[i]
		out[j+1] = rgb[i+1]
		out[j+2] = rgb[i+2]
		out[j+3] = 0xFF
	}
	return out
}
