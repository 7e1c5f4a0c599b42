package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/funnelsim/pipeline"
	"github.com/inference-sim/funnelsim/sim"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate every funnel configuration without simulating",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		refs, err := pipeline.Discover(configsPattern)
		if err != nil {
			return err
		}
		return validateAll(cmd.OutOrStdout(), refs)
	},
}

// validateAll checks every configuration and reports each one. It returns an
// error naming how many failed.
func validateAll(w io.Writer, refs []pipeline.ConfigRef) error {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()

	failed := 0
	for _, ref := range refs {
		cfg, err := sim.LoadFunnelConfig(ref.Path)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			failed++
			logrus.WithField("config", ref.Name).Debugf("validation failed: %v", err)
			fmt.Fprintf(w, "%s %s: %v\n", bad("FAIL"), ref.Name, err)
			continue
		}
		fmt.Fprintf(w, "%s %s (%d modules)\n", ok("ok"), ref.Name, len(cfg.Modules))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d configuration(s) invalid", failed, len(refs))
	}
	return nil
}
