package main

import (
	"fmt"

	"github.com/cormoran/zmk-module-runtime-input-processor/processor"
	"github.com/spf13/cobra"
)

func newListCmd(loadApp func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every configured instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			return a.reg.ForEach(func(id int, inst *processor.Instance) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, inst.Name())

				return nil
			})
		},
	}
}
