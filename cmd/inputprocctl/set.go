package main

import (
	"github.com/cormoran/zmk-module-runtime-input-processor/devkit"
	"github.com/cormoran/zmk-module-runtime-input-processor/processor"
	"github.com/spf13/cobra"
)

// withPersistentFlag adds the --persistent flag every set_* subcommand
// of spec §4.7 accepts, returning a getter for its value.
func withPersistentFlag(cmd *cobra.Command) func() bool {
	persistent := cmd.Flags().Bool("persistent", false, "also update the persisted value and schedule a save")

	return func() bool { return *persistent }
}

func newSetCmd(loadApp func() (*app, error)) *cobra.Command {
	set := &cobra.Command{
		Use:   "set",
		Short: "Mutate an instance's tunables (spec §4.7 control surface)",
	}

	set.AddCommand(
		newSetScalingCmd(loadApp),
		newSetRotationCmd(loadApp),
		newSetAxisSnapCmd(loadApp),
		newSetActiveLayersCmd(loadApp),
		newSetKeybindCmd(loadApp),
		newSetBoolCmd(loadApp, "xy-to-scroll", "set_xy_to_scroll", func(i *processor.Instance, v, persistent bool) error {
			return i.SetXYToScroll(v, persistent)
		}),
		newSetBoolCmd(loadApp, "xy-swap", "set_xy_swap", func(i *processor.Instance, v, persistent bool) error {
			return i.SetXYSwap(v, persistent)
		}),
		newSetBoolCmd(loadApp, "x-invert", "set_x_invert", func(i *processor.Instance, v, persistent bool) error {
			return i.SetXInvert(v, persistent)
		}),
		newSetBoolCmd(loadApp, "y-invert", "set_y_invert", func(i *processor.Instance, v, persistent bool) error {
			return i.SetYInvert(v, persistent)
		}),
	)

	return set
}

func withInstanceArg(loadApp func() (*app, error), name string, fn func(inst *processor.Instance) error) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	inst, err := a.instance(name)
	if err != nil {
		return err
	}

	return fn(inst)
}

func newSetScalingCmd(loadApp func() (*app, error)) *cobra.Command {
	var mul, div uint32

	cmd := &cobra.Command{
		Use:   "scaling <instance>",
		Short: "set_scaling(mul, div)",
		Args:  cobra.ExactArgs(1),
	}

	persistent := withPersistentFlag(cmd)
	cmd.Flags().Uint32Var(&mul, "mul", 1, "scale numerator")
	cmd.Flags().Uint32Var(&div, "div", 1, "scale denominator")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withInstanceArg(loadApp, args[0], func(inst *processor.Instance) error {
			return inst.SetScaling(mul, div, persistent())
		})
	}

	return cmd
}

func newSetRotationCmd(loadApp func() (*app, error)) *cobra.Command {
	var deg int32

	cmd := &cobra.Command{
		Use:   "rotation <instance>",
		Short: "set_rotation(deg)",
		Args:  cobra.ExactArgs(1),
	}

	persistent := withPersistentFlag(cmd)
	cmd.Flags().Int32Var(&deg, "deg", 0, "rotation in degrees")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withInstanceArg(loadApp, args[0], func(inst *processor.Instance) error {
			return inst.SetRotation(deg, persistent())
		})
	}

	return cmd
}

func newSetAxisSnapCmd(loadApp func() (*app, error)) *cobra.Command {
	var (
		mode      string
		threshold uint16
		timeoutMs uint16
	)

	cmd := &cobra.Command{
		Use:   "axis-snap <instance>",
		Short: "set_axis_snap(mode, threshold, timeout)",
		Args:  cobra.ExactArgs(1),
	}

	persistent := withPersistentFlag(cmd)
	cmd.Flags().StringVar(&mode, "mode", "none", "none|snap_x|snap_y")
	cmd.Flags().Uint16Var(&threshold, "threshold", 0, "accumulator threshold")
	cmd.Flags().Uint16Var(&timeoutMs, "timeout-ms", 0, "decay timeout in ms")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		parsed, err := devkit.ParseAxisSnapMode(mode)
		if err != nil {
			return err
		}

		return withInstanceArg(loadApp, args[0], func(inst *processor.Instance) error {
			return inst.SetAxisSnap(parsed, threshold, timeoutMs, persistent())
		})
	}

	return cmd
}

func newSetActiveLayersCmd(loadApp func() (*app, error)) *cobra.Command {
	var mask uint32

	cmd := &cobra.Command{
		Use:   "active-layers <instance>",
		Short: "set_active_layers(mask)",
		Args:  cobra.ExactArgs(1),
	}

	persistent := withPersistentFlag(cmd)
	cmd.Flags().Uint32Var(&mask, "mask", 0, "bitmask of layers gating this instance (0 = all)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withInstanceArg(loadApp, args[0], func(inst *processor.Instance) error {
			return inst.SetActiveLayers(mask, persistent())
		})
	}

	return cmd
}

func newSetKeybindCmd(loadApp func() (*app, error)) *cobra.Command {
	var (
		enabled      bool
		count        uint8
		degreeOffset uint16
		tick         uint16
	)

	cmd := &cobra.Command{
		Use:   "keybind <instance>",
		Short: "set_keybind_enabled / count / degree_offset / tick",
		Args:  cobra.ExactArgs(1),
	}

	persistent := withPersistentFlag(cmd)
	cmd.Flags().BoolVar(&enabled, "enabled", false, "enable directional keybind dispatch")
	cmd.Flags().Uint8Var(&count, "count", 4, "direction count, 1-8")
	cmd.Flags().Uint16Var(&degreeOffset, "degree-offset", 0, "direction-segment rotation, 0-359")
	cmd.Flags().Uint16Var(&tick, "tick", 1, "distance-squared threshold tick")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withInstanceArg(loadApp, args[0], func(inst *processor.Instance) error {
			p := persistent()

			if err := inst.SetKeybindEnabled(enabled, p); err != nil {
				return err
			}

			if err := inst.SetKeybindCount(count, p); err != nil {
				return err
			}

			if err := inst.SetKeybindDegreeOffset(degreeOffset, p); err != nil {
				return err
			}

			return inst.SetKeybindTick(tick, p)
		})
	}

	return cmd
}

func newSetBoolCmd(loadApp func() (*app, error), use, op string, apply func(*processor.Instance, bool, bool) error) *cobra.Command {
	var value bool

	cmd := &cobra.Command{
		Use:   use + " <instance>",
		Short: op,
		Args:  cobra.ExactArgs(1),
	}

	persistent := withPersistentFlag(cmd)
	cmd.Flags().BoolVar(&value, "value", false, "new boolean value")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return withInstanceArg(loadApp, args[0], func(inst *processor.Instance) error {
			return apply(inst, value, persistent())
		})
	}

	return cmd
}
