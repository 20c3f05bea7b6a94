package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(loadApp func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "show <instance>",
		Short: "Print an instance's current public config view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			inst, err := a.instance(args[0])
			if err != nil {
				return err
			}

			name, view := inst.GetConfig()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "name: %s\n", name)
			fmt.Fprintf(out, "scale: %d/%d\n", view.ScaleMul, view.ScaleDiv)
			fmt.Fprintf(out, "rotation_deg: %d\n", view.RotationDeg)
			fmt.Fprintf(out, "temp_layer: enabled=%v layer=%d act_ms=%d deact_ms=%d\n",
				view.TempLayerEnabled, view.TempLayerLayer, view.TempLayerActMs, view.TempLayerDeactMs)
			fmt.Fprintf(out, "active_layers: %#x\n", view.ActiveLayers)
			fmt.Fprintf(out, "axis_snap: mode=%d threshold=%d timeout_ms=%d\n",
				view.AxisSnapMode, view.AxisSnapThreshold, view.AxisSnapTimeoutMs)
			fmt.Fprintf(out, "xy_to_scroll=%v xy_swap=%v x_invert=%v y_invert=%v\n",
				view.XYToScroll, view.XYSwap, view.XInvert, view.YInvert)
			fmt.Fprintf(out, "keybind: enabled=%v count=%d degree_offset=%d tick=%d\n",
				view.KeybindEnabled, view.KeybindCount, view.KeybindDegreeOffset, view.KeybindTick)

			return nil
		},
	}
}
