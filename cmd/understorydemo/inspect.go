package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"understory/imaging"
	"understory/imaging/wire"
)

func newInspectCmd(newLogger func() *zap.SugaredLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.imgrec>",
		Short: "Summarize a recorded .imgrec file's op counts by kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("understorydemo inspect: read %s: %w", args[0], err)
			}
			ops, err := wire.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("understorydemo inspect: decode %s: %w", args[0], err)
			}

			counts := map[string]int{}
			for _, op := range ops {
				counts[opKindName(op)]++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ops\n", args[0], len(ops))
			for _, kind := range []string{
				"SetTransform", "SetPaintTransform", "PushLayer", "PopLayer",
				"SetPaint", "SetStroke", "SetFillRule",
				"FillPath", "StrokePath", "FillRect", "StrokeRect",
				"DrawImage", "DrawImageRect", "DrawPicture",
			} {
				if n := counts[kind]; n > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %d\n", kind, n)
				}
			}
			log.Debugw("inspected recording", "path", args[0], "ops", len(ops))
			return nil
		},
	}
}

func opKindName(op imaging.ImagingOp) string {
	switch v := op.(type) {
	case imaging.StateKind:
		switch v.Op.(type) {
		case imaging.SetTransform:
			return "SetTransform"
		case imaging.SetPaintTransform:
			return "SetPaintTransform"
		case imaging.PushLayer:
			return "PushLayer"
		case imaging.PopLayer:
			return "PopLayer"
		case imaging.SetPaint:
			return "SetPaint"
		case imaging.SetStroke:
			return "SetStroke"
		case imaging.SetFillRule:
			return "SetFillRule"
		}
	case imaging.DrawKind:
		switch v.Op.(type) {
		case imaging.FillPath:
			return "FillPath"
		case imaging.StrokePath:
			return "StrokePath"
		case imaging.FillRect:
			return "FillRect"
		case imaging.StrokeRect:
			return "StrokeRect"
		case imaging.DrawImage:
			return "DrawImage"
		case imaging.DrawImageRect:
			return "DrawImageRect"
		case imaging.DrawPicture:
			return "DrawPicture"
		}
	}
	return "unknown"
}
