package main

import (
	"github.com/cormoran/zmk-module-runtime-input-processor/processor"
	"github.com/spf13/cobra"
)

func newResetCmd(loadApp func() (*app, error)) *cobra.Command {
	reset := &cobra.Command{
		Use:   "reset",
		Short: "reset() / restore-persistent() for an instance",
	}

	reset.AddCommand(&cobra.Command{
		Use:   "all <instance>",
		Short: "reset(): restore every tunable to its configured initial value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInstanceArg(loadApp, args[0], func(inst *processor.Instance) error {
				return inst.Reset()
			})
		},
	})

	reset.AddCommand(&cobra.Command{
		Use:   "persistent <instance>",
		Short: "restore_persistent(): current <- persistent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInstanceArg(loadApp, args[0], func(inst *processor.Instance) error {
				return inst.RestorePersistent()
			})
		},
	})

	return reset
}
