package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "List mounted drives",
	Long: `List the mounted volumes of this machine, or of the listing server when
source.type is http.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		lister, err := newDriveLister(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, requestTimeout(cfg))
		defer cancel()

		drives, err := lister.ListDrives(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MOUNT\tDEVICE\tFSTYPE")
		for _, d := range drives {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.Path, d.Device, d.Fstype)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(drivesCmd)
}
