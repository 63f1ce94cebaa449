package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/bdclient/internal/remote"
	"github.com/groblegark/bdclient/internal/workspace"
)

var fetchCmd = &cobra.Command{
	Use:         "fetch",
	Short:       "Download the snapshot published to object storage",
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.RemoteS3Bucket == "" {
			return fmt.Errorf("no bucket configured (set BEADS_REMOTE_S3_BUCKET or an s3_bucket profile entry)")
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = cfg.Snapshot
		}
		if out == "" {
			dir, err := workspace.Find(".")
			if err != nil {
				return fmt.Errorf("no output path: %w (use --out)", err)
			}
			out = workspace.SnapshotPath(dir)
		}

		src, err := remote.NewS3Source(cmd.Context(),
			cfg.RemoteS3Bucket, cfg.RemoteS3Key, cfg.RemoteS3Region, cfg.RemoteS3Endpoint)
		if err != nil {
			return err
		}
		if err := src.FetchTo(cmd.Context(), out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Fetched s3://%s/%s to %s\n", cfg.RemoteS3Bucket, cfg.RemoteS3Key, out)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringP("out", "o", "", "destination file (default: the workspace snapshot)")
}
