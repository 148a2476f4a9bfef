package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"understory/backend/ebitenimaging"
	"understory/imaging/wire"
)

func newRecordCmd(newLogger func() *zap.SugaredLogger) *cobra.Command {
	var out string
	var seconds float64

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Advance the demo scene offscreen and write one recording to a .imgrec file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			if out == "" {
				return fmt.Errorf("understorydemo record: --out is required")
			}

			scene := newDemoScene(log)
			dt := float32(1.0 / 60.0)
			for t := 0.0; t < seconds; t += float64(dt) {
				scene.advance(dt)
			}

			root := ebiten.NewImage(windowWidth, windowHeight)
			b := ebitenimaging.New(root, log)
			b.BeginRecord()
			paintScene(b, scene)
			rec := b.EndRecord()

			data, err := wire.Marshal(rec.Ops)
			if err != nil {
				return fmt.Errorf("understorydemo record: encode: %w", err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("understorydemo record: write %s: %w", out, err)
			}
			log.Infow("wrote recording", "path", out, "ops", len(rec.Ops), "seconds", seconds)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "path to write the .imgrec file (required)")
	cmd.Flags().Float64Var(&seconds, "seconds", 1.0, "simulated seconds to advance the scene before capturing")
	return cmd
}
