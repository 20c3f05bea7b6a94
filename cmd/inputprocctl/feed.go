package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/cormoran/zmk-module-runtime-input-processor/evcode"
	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/spf13/cobra"
)

// newFeedCmd feeds synthetic REL events read from stdin (one
// "<code> <value>" pair per line, e.g. "0 5" for a REL_X delta of 5)
// through an instance's pipeline and prints what each produces. It
// stands in for the real evdev event stream a device-tree driver would
// deliver, the same role devkit YAML fixtures play for configuration.
func newFeedCmd(loadApp func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "feed <instance>",
		Short: "Feed REL events from stdin through an instance's pipeline",
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

			scanner := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}

				fields := strings.Fields(line)
				if len(fields) != 2 {
					return fmt.Errorf("inputprocctl: feed: malformed line %q, want \"<code> <value>\"", line)
				}

				code, err := strconv.ParseUint(fields[0], 10, 16)
				if err != nil {
					return fmt.Errorf("inputprocctl: feed: bad code %q: %w", fields[0], err)
				}

				value, err := strconv.ParseInt(fields[1], 10, 16)
				if err != nil {
					return fmt.Errorf("inputprocctl: feed: bad value %q: %w", fields[1], err)
				}

				ev := inputproc.Event{Type: evcode.EVRel, Code: uint16(code), Value: int16(value)}

				result, forward := inst.Process(ev)
				if !forward {
					fmt.Fprintln(out, "consumed")

					continue
				}

				fmt.Fprintf(out, "type=%d code=%d value=%d\n", result.Type, result.Code, result.Value)
			}

			return scanner.Err()
		},
	}
}
