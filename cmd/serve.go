package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/dirnav/internal/listing"
	"github.com/HaiFongPan/dirnav/internal/server"
)

var (
	serveAddr string
	serveRoot string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local directory tree over HTTP",
	Long: `Serve source.root of this machine through the listing API, so that other
dirnav instances can browse it with source.type = "http".

Routes:
  POST /api/v1/list-directory   {"path": "/some/dir"}
  GET  /api/v1/list-drives
  GET  /api/v1/thumbnail?path=/some/image.jpg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		root := cfg.Source.Root
		if serveRoot != "" {
			root = serveRoot
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return fmt.Errorf("root %s is not a directory", root)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(
			listing.NewLocalService(root, cfg.Source.ShowHidden),
			listing.NewLocalDrives(false),
			cfg.Server.ThumbnailSize,
		)

		logrus.WithFields(logrus.Fields{"addr": addr, "root": root}).Info("serve: starting")
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", root, addr)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveRoot, "root", "", "directory to serve (overrides source.root)")
}
