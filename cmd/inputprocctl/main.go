// Command inputprocctl is a reference host-side CLI for the
// runtime-configurable input-event pipeline: it loads a devkit YAML
// instance file (and, optionally, a binding TOML behavior table), wires
// up a [registry.Registry] of live [processor.Instance]s against the
// reference [store.FSStore] and [observer.Logging] collaborators, and
// exposes spec §4.7's control surface and §4.1's event feed as
// subcommands. Production firmware never runs this binary; it exists so
// the module is runnable and demoable end to end, the same way the
// teacher library's inputdevices command stood in for a real driver.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/cormoran/zmk-module-runtime-input-processor/devkit"
	"github.com/cormoran/zmk-module-runtime-input-processor/observer"
	"github.com/cormoran/zmk-module-runtime-input-processor/processor"
	"github.com/cormoran/zmk-module-runtime-input-processor/registry"
	"github.com/cormoran/zmk-module-runtime-input-processor/schedule"
	"github.com/cormoran/zmk-module-runtime-input-processor/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app bundles everything a subcommand needs once the instance file has
// been loaded: the registry to look instances up in, and the executor
// to stop on exit.
type app struct {
	reg    *registry.Registry
	ex     *schedule.Executor
	logger *zap.SugaredLogger
}

func newApp(instancesPath, behaviorsPath, stateDir string) (*app, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("inputprocctl: build logger: %w", err)
	}

	sugar := logger.Sugar()

	var reg binding.Registry = binding.NewTableRegistry()
	if behaviorsPath != "" {
		loaded, err := binding.LoadTOML(behaviorsPath)
		if err != nil {
			return nil, fmt.Errorf("inputprocctl: load behaviors: %w", err)
		}

		reg = loaded
	}

	configs, err := devkit.LoadFile(instancesPath, reg)
	if err != nil {
		return nil, fmt.Errorf("inputprocctl: load instances: %w", err)
	}

	ex := schedule.NewExecutor(context.Background())
	fsStore := store.NewFSStore(stateDir)
	obs := observer.NewLogging(sugar)

	instanceReg := registry.New()
	for _, cfg := range configs {
		inst := processor.New(context.Background(), cfg, ex,
			processor.WithRegistry(reg),
			processor.WithStore(fsStore),
			processor.WithObserver(obs),
			processor.WithLogger(sugar),
		)
		instanceReg.Add(inst)
	}

	return &app{reg: instanceReg, ex: ex, logger: sugar}, nil
}

func (a *app) instance(name string) (*processor.Instance, error) {
	inst, ok := a.reg.ByName(name)
	if !ok {
		return nil, fmt.Errorf("inputprocctl: no such instance %q", name)
	}

	return inst, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "inputprocctl:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		instancesPath string
		behaviorsPath string
		stateDir      string
	)

	root := &cobra.Command{
		Use:           "inputprocctl",
		Short:         "Inspect and drive a runtime-configurable input-event pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&instancesPath, "instances", "", "path to a devkit YAML instance file (required)")
	root.PersistentFlags().StringVar(&behaviorsPath, "behaviors", "", "optional path to a binding TOML behavior table")
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "inputproc", "XDG state subdirectory for persisted settings")

	_ = root.MarkPersistentFlagRequired("instances")

	loadApp := func() (*app, error) {
		return newApp(instancesPath, behaviorsPath, stateDir)
	}

	root.AddCommand(
		newListCmd(loadApp),
		newShowCmd(loadApp),
		newFeedCmd(loadApp),
		newSetCmd(loadApp),
		newResetCmd(loadApp),
	)

	return root
}
