package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/dirnav/internal/listing"
	"github.com/HaiFongPan/dirnav/internal/utils"
)

var (
	showSize   bool
	showDate   bool
	showHidden bool
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory",
	Long: `List a directory of the configured source. The path is resolved against the
current directory and the current directory does not change.

Examples:
  dirnav ls                 # Current directory
  dirnav ls ..              # Parent directory
  dirnav ls /photos --date  # Show modification dates`,
	Args: cobra.MaximumNArgs(1),
	RunE: listDirectory,
}

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().BoolVar(&showSize, "size", true, "show file sizes")
	lsCmd.Flags().BoolVar(&showDate, "date", false, "show modification dates")
	lsCmd.Flags().BoolVar(&showHidden, "hidden", false, "show dot files (overrides source.show_hidden)")
}

func listDirectory(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cmd.Flags().Changed("hidden") {
		cfg.Source.ShowHidden = showHidden
	}

	nav := newController(cfg, nil)
	target := nav.CurrentPath()
	if len(args) > 0 {
		target = nav.Resolve(args[0])
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout(cfg))
	defer cancel()

	service, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	logrus.Debugf("ls: listing %s", target)
	contents, err := service.ListDirectory(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", target, err)
	}

	return outputTable(cmd.OutOrStdout(), contents)
}

func outputTable(out io.Writer, contents *listing.DirectoryContents) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := "NAME\tTYPE"
	if showSize {
		header += "\tSIZE"
	}
	if showDate {
		header += "\tMODIFIED"
	}
	fmt.Fprintln(w, header)

	for _, d := range contents.Directories {
		line := d.Name + "/\t" + utils.CategoryDirectory
		if showSize {
			line += "\t-"
		}
		if showDate {
			line += "\t-"
		}
		fmt.Fprintln(w, line)
	}

	for _, f := range contents.Files {
		line := f.Name + "\t" + utils.FileCategory(f.Name)
		if showSize {
			line += "\t" + humanize.IBytes(uint64(f.Size))
		}
		if showDate {
			line += "\t" + f.LastModified.Format(time.RFC3339)
		}
		fmt.Fprintln(w, line)
	}

	return w.Flush()
}
