// Command perifa-serve serves the site for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perifanotoque/perifa/internal/devserver"
)

// Version is set via ldflags at build time.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "perifa-serve",
	Short: "Development server for the Perifa no Toque site",
	Long: `perifa-serve serves the host page, the compiled perifa.wasm runtime and
the notification icons rendered as PNG. Configuration comes from a YAML file
and PERIFA_* environment variables; flags win over both.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dev server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := devserver.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("port") {
			cfg.Port, _ = flags.GetInt("port")
		}
		if flags.Changed("dir") {
			cfg.Dir, _ = flags.GetString("dir")
		}
		if flags.Changed("allow-all") {
			cfg.AllowAll, _ = flags.GetBool("allow-all")
		}
		if flags.Changed("log-level") {
			cfg.LogLevel, _ = flags.GetString("log-level")
		}

		log, err := devserver.NewLogger(cfg.LogLevel, cfg.HumanLogs, os.Stderr)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}

		srv, err := devserver.New(cfg, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of perifa-serve",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "perifa-serve %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "perifa-serve.yml", "config file path")

	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().String("dir", "", "web directory (default: embedded host page)")
	serveCmd.Flags().Bool("allow-all", false, "allow every CORS origin")
	serveCmd.Flags().String("log-level", "info", "log level")

	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
