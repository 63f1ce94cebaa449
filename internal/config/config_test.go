package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// allEnvVars lists every env var the loader reads, cleared between tests.
var allEnvVars = []string{
	"BEADS_SOCKET", "BEADS_SNAPSHOT", "BEADS_ACTOR", "BEADS_NATS_URL",
	"BEADS_RPC_TIMEOUT", "BEADS_POLL_INTERVAL", "BEADS_PROFILE",
	"BEADS_REMOTE_S3_BUCKET", "BEADS_REMOTE_S3_ENDPOINT",
	"BEADS_REMOTE_S3_REGION", "BEADS_REMOTE_S3_KEY",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearAllEnv(t)

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RPCTimeout != 5*time.Second {
		t.Errorf("RPCTimeout = %v, want 5s", cfg.RPCTimeout)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if cfg.RemoteS3Region != "us-east-1" {
		t.Errorf("RemoteS3Region = %q, want us-east-1", cfg.RemoteS3Region)
	}
	if cfg.RemoteS3Key != "beads/issues.jsonl" {
		t.Errorf("RemoteS3Key = %q", cfg.RemoteS3Key)
	}
	if cfg.Actor == "" {
		t.Error("Actor is empty, want a fallback value")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("BEADS_SOCKET", "/run/bd.sock")
	t.Setenv("BEADS_SNAPSHOT", "/data/issues.jsonl")
	t.Setenv("BEADS_ACTOR", "ci-bot")
	t.Setenv("BEADS_NATS_URL", "nats://localhost:4222")
	t.Setenv("BEADS_RPC_TIMEOUT", "10s")
	t.Setenv("BEADS_POLL_INTERVAL", "500ms")
	t.Setenv("BEADS_REMOTE_S3_BUCKET", "backups")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Socket != "/run/bd.sock" {
		t.Errorf("Socket = %q", cfg.Socket)
	}
	if cfg.Snapshot != "/data/issues.jsonl" {
		t.Errorf("Snapshot = %q", cfg.Snapshot)
	}
	if cfg.Actor != "ci-bot" {
		t.Errorf("Actor = %q", cfg.Actor)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("NATSURL = %q", cfg.NATSURL)
	}
	if cfg.RPCTimeout != 10*time.Second {
		t.Errorf("RPCTimeout = %v", cfg.RPCTimeout)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.RemoteS3Bucket != "backups" {
		t.Errorf("RemoteS3Bucket = %q", cfg.RemoteS3Bucket)
	}
}

func TestLoadFrom_InvalidDuration(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("BEADS_RPC_TIMEOUT", "not-a-duration")
	if _, err := LoadFrom(""); err == nil {
		t.Fatal("expected error for invalid BEADS_RPC_TIMEOUT")
	}

	clearAllEnv(t)
	t.Setenv("BEADS_POLL_INTERVAL", "soon")
	if _, err := LoadFrom(""); err == nil {
		t.Fatal("expected error for invalid BEADS_POLL_INTERVAL")
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const profileFixture = `
default = "work"

[profiles.work]
socket = "/work/.beads/bd.sock"
nats_url = "nats://work:4222"
actor = "worker"

[profiles.backup]
snapshot = "/backups/issues.jsonl"
s3_bucket = "issue-backups"
s3_region = "eu-west-1"
`

func TestLoadFrom_DefaultProfile(t *testing.T) {
	clearAllEnv(t)
	path := writeConfigFile(t, profileFixture)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Socket != "/work/.beads/bd.sock" {
		t.Errorf("Socket = %q, default profile not applied", cfg.Socket)
	}
	if cfg.NATSURL != "nats://work:4222" {
		t.Errorf("NATSURL = %q", cfg.NATSURL)
	}
	if cfg.Actor != "worker" {
		t.Errorf("Actor = %q", cfg.Actor)
	}
}

func TestLoadFrom_ProfileSelection(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("BEADS_PROFILE", "backup")
	path := writeConfigFile(t, profileFixture)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Snapshot != "/backups/issues.jsonl" {
		t.Errorf("Snapshot = %q", cfg.Snapshot)
	}
	if cfg.RemoteS3Bucket != "issue-backups" {
		t.Errorf("RemoteS3Bucket = %q", cfg.RemoteS3Bucket)
	}
	if cfg.RemoteS3Region != "eu-west-1" {
		t.Errorf("RemoteS3Region = %q", cfg.RemoteS3Region)
	}
	// Fields the profile leaves out keep their defaults.
	if cfg.RemoteS3Key != "beads/issues.jsonl" {
		t.Errorf("RemoteS3Key = %q", cfg.RemoteS3Key)
	}
}

func TestLoadFrom_EnvBeatsProfile(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("BEADS_ACTOR", "override")
	path := writeConfigFile(t, profileFixture)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Actor != "override" {
		t.Errorf("Actor = %q, env must beat the profile", cfg.Actor)
	}
}

func TestLoadFrom_UnknownProfile(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("BEADS_PROFILE", "nope")
	path := writeConfigFile(t, profileFixture)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestLoadFrom_MissingFileIsFine(t *testing.T) {
	clearAllEnv(t)
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Fatalf("missing config file must not error: %v", err)
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
