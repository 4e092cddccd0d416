package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/HaiFongPan/dirnav/internal/navigation"
)

var cdCmd = &cobra.Command{
	Use:   "cd <path>",
	Short: "Move to a directory",
	Long: `Move to a directory given as an absolute path or relative to the current one.
"." and ".." segments are resolved; ".." never climbs above the root.

Examples:
  dirnav cd /var/log
  dirnav cd ../sibling`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(nav *navigation.Controller) error {
			nav.NavigateToPath(args[0])
			return nil
		})
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Move to the parent directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(nav *navigation.Controller) error {
			nav.NavigateUp()
			return nil
		})
	},
}

var backCmd = &cobra.Command{
	Use:   "back",
	Short: "Step back in history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(nav *navigation.Controller) error {
			if !nav.NavigateBack() {
				return fmt.Errorf("no previous directory in history")
			}
			return nil
		})
	},
}

var forwardCmd = &cobra.Command{
	Use:   "forward",
	Short: "Step forward in history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(nav *navigation.Controller) error {
			if !nav.NavigateForward() {
				return fmt.Errorf("no next directory in history")
			}
			return nil
		})
	},
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Move to the home directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(nav *navigation.Controller) error {
			nav.NavigateHome()
			return nil
		})
	},
}

var pwdCmd = &cobra.Command{
	Use:   "pwd",
	Short: "Print the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(*navigation.Controller) error { return nil })
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the navigation history",
	Long: `Print every history entry, oldest first. The current entry is marked
with an arrow; entries below it are reachable with "dirnav forward".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nav := newController(GetConfig(), nil)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for i, p := range nav.History() {
			marker := " "
			if i == nav.Cursor() {
				marker = "→"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", marker, i, p)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(cdCmd, upCmd, backCmd, forwardCmd, homeCmd, pwdCmd, historyCmd)
}

// withController runs fn against the persisted controller and prints the
// resulting current directory.
func withController(cmd *cobra.Command, fn func(*navigation.Controller) error) error {
	nav := newController(GetConfig(), logInvalidator)
	if err := fn(nav); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), nav.CurrentPath())
	return nil
}
