// Package config assembles client settings from an optional TOML profile
// file and BEADS_* environment variables. Precedence is built-in defaults,
// then the selected profile, then the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Socket       string        // BEADS_SOCKET (empty = discover via .beads)
	Snapshot     string        // BEADS_SNAPSHOT (empty = discover via .beads)
	Actor        string        // BEADS_ACTOR (default $USER, then "bdc")
	RPCTimeout   time.Duration // BEADS_RPC_TIMEOUT (default 5s)
	PollInterval time.Duration // BEADS_POLL_INTERVAL (default 2s)
	NATSURL      string        // BEADS_NATS_URL (optional, empty = poll for changes)

	// Remote snapshot settings
	RemoteS3Bucket   string // BEADS_REMOTE_S3_BUCKET (enables S3 fetch when set)
	RemoteS3Endpoint string // BEADS_REMOTE_S3_ENDPOINT (custom endpoint for MinIO)
	RemoteS3Region   string // BEADS_REMOTE_S3_REGION (default "us-east-1")
	RemoteS3Key      string // BEADS_REMOTE_S3_KEY (default "beads/issues.jsonl")
}

// Profile is one named connection target in the config file.
type Profile struct {
	Socket           string `toml:"socket"`
	Snapshot         string `toml:"snapshot"`
	Actor            string `toml:"actor"`
	NATSURL          string `toml:"nats_url"`
	RemoteS3Bucket   string `toml:"s3_bucket"`
	RemoteS3Endpoint string `toml:"s3_endpoint"`
	RemoteS3Region   string `toml:"s3_region"`
	RemoteS3Key      string `toml:"s3_key"`
}

// File is the on-disk config file shape.
type File struct {
	Default  string             `toml:"default"`
	Profiles map[string]Profile `toml:"profiles"`
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bdc", "config.toml")
}

// Load reads the config file at the default location (when present) and
// the environment.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom is Load with an explicit config file path. A missing file is
// not an error; a malformed one is.
func LoadFrom(path string) (*Config, error) {
	c := &Config{
		Actor:          envOrDefault("USER", "bdc"),
		RPCTimeout:     5 * time.Second,
		PollInterval:   2 * time.Second,
		RemoteS3Region: "us-east-1",
		RemoteS3Key:    "beads/issues.jsonl",
	}

	if path != "" {
		if err := applyFile(c, path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("BEADS_SOCKET"); v != "" {
		c.Socket = v
	}
	if v := os.Getenv("BEADS_SNAPSHOT"); v != "" {
		c.Snapshot = v
	}
	if v := os.Getenv("BEADS_ACTOR"); v != "" {
		c.Actor = v
	}
	if v := os.Getenv("BEADS_NATS_URL"); v != "" {
		c.NATSURL = v
	}
	if v := os.Getenv("BEADS_REMOTE_S3_BUCKET"); v != "" {
		c.RemoteS3Bucket = v
	}
	if v := os.Getenv("BEADS_REMOTE_S3_ENDPOINT"); v != "" {
		c.RemoteS3Endpoint = v
	}
	if v := os.Getenv("BEADS_REMOTE_S3_REGION"); v != "" {
		c.RemoteS3Region = v
	}
	if v := os.Getenv("BEADS_REMOTE_S3_KEY"); v != "" {
		c.RemoteS3Key = v
	}

	if v := os.Getenv("BEADS_RPC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("BEADS_RPC_TIMEOUT: %w", err)
		}
		c.RPCTimeout = d
	}
	if v := os.Getenv("BEADS_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("BEADS_POLL_INTERVAL: %w", err)
		}
		c.PollInterval = d
	}

	return c, nil
}

// applyFile merges the selected profile into c. BEADS_PROFILE picks the
// profile, falling back to the file's default entry.
func applyFile(c *Config, path string) error {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	name := envOrDefault("BEADS_PROFILE", f.Default)
	if name == "" {
		return nil
	}
	p, ok := f.Profiles[name]
	if !ok {
		return fmt.Errorf("config %s: profile %q not defined", path, name)
	}

	if p.Socket != "" {
		c.Socket = p.Socket
	}
	if p.Snapshot != "" {
		c.Snapshot = p.Snapshot
	}
	if p.Actor != "" {
		c.Actor = p.Actor
	}
	if p.NATSURL != "" {
		c.NATSURL = p.NATSURL
	}
	if p.RemoteS3Bucket != "" {
		c.RemoteS3Bucket = p.RemoteS3Bucket
	}
	if p.RemoteS3Endpoint != "" {
		c.RemoteS3Endpoint = p.RemoteS3Endpoint
	}
	if p.RemoteS3Region != "" {
		c.RemoteS3Region = p.RemoteS3Region
	}
	if p.RemoteS3Key != "" {
		c.RemoteS3Key = p.RemoteS3Key
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
