package main

import (
	"context"
	"image/color"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"understory/backend/ebitenimaging"
)

const (
	windowWidth  = 480
	windowHeight = 360
)

var ebitenBackgroundColor = color.RGBA{R: 24, G: 26, B: 32, A: 255}

func newRunCmd(newLogger func() *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open a window animating the demo scene live",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			ebiten.SetWindowSize(windowWidth, windowHeight)
			ebiten.SetWindowTitle("understorydemo")
			game := newDemoGame(ctx, log)
			return ebiten.RunGame(game)
		},
	}
}

// demoGame implements ebiten.Game by delegating to a demoScene and an
// ebitenimaging.Backend, generalizing the teacher's gameShell (which
// delegated Update/Draw to a willow.Scene) to drive understory's
// reactive core instead of a Node tree. ctx carries the outer run's
// cancellation signal; demoGame itself never blocks on it, matching the
// teacher's pattern of threading context.Context only through the
// outermost orchestration layer and leaving the per-frame Update/Draw
// loop itself synchronous.
type demoGame struct {
	ctx   context.Context
	log   *zap.SugaredLogger
	scene *demoScene
}

func newDemoGame(ctx context.Context, log *zap.SugaredLogger) *demoGame {
	return &demoGame{ctx: ctx, log: log, scene: newDemoScene(log)}
}

func (g *demoGame) Update() error {
	if err := g.ctx.Err(); err != nil {
		return err
	}
	g.scene.advance(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	screen.Fill(ebitenBackgroundColor)
	b := ebitenimaging.New(screen, g.log)
	paintScene(b, g.scene)
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
