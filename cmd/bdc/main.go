package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/bdclient/internal/client"
	"github.com/groblegark/bdclient/internal/config"
	"github.com/groblegark/bdclient/internal/ui"
)

var (
	cfgFile      string
	socketFlag   string
	snapshotFlag string
	actorFlag    string
	jsonOutput   bool
	noColor      bool

	cfg *config.Config
	cli *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "bdc",
	Short: "Client for the beads issue tracker",
	Long: `bdc talks to a local bd daemon when one is running and falls back to
the workspace's exported snapshot file when it is not. Mutating commands
require the daemon.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}

		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFrom(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if socketFlag != "" {
			cfg.Socket = socketFlag
		}
		if snapshotFlag != "" {
			cfg.Snapshot = snapshotFlag
		}
		if actorFlag != "" {
			cfg.Actor = actorFlag
		}

		if cmd.Annotations["offline"] == "true" {
			return nil
		}

		opts := []client.Option{
			client.WithTimeout(cfg.RPCTimeout),
			client.WithPollInterval(cfg.PollInterval),
			client.WithActor(cfg.Actor),
		}
		if cfg.Socket != "" {
			opts = append(opts, client.WithSocketPath(cfg.Socket))
		}
		if cfg.Snapshot != "" {
			opts = append(opts, client.WithSnapshotPath(cfg.Snapshot))
		}
		if cfg.NATSURL != "" {
			opts = append(opts, client.WithEventsURL(cfg.NATSURL))
		}
		cli = client.New(opts...)
		return cli.Connect(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cli != nil {
			cli.Disconnect()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the user config dir)")
	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "daemon socket path (default: discover via .beads)")
	rootCmd.PersistentFlags().StringVar(&snapshotFlag, "snapshot", "", "snapshot file path (default: discover via .beads)")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "actor name attached to mutations")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.SetHelpFunc(colorizedHelpFunc())

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(readyCmd)
	rootCmd.AddCommand(blockedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(depCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
