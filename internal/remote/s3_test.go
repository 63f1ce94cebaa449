package remote

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeGetObject struct {
	body string
	err  error

	gotBucket string
	gotKey    string
}

func (f *fakeGetObject) GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotBucket = *in.Bucket
	f.gotKey = *in.Key
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestFetch(t *testing.T) {
	fake := &fakeGetObject{body: `{"id":"bd-1"}` + "\n"}
	src := &S3Source{client: fake, bucket: "backups", key: "beads/issues.jsonl"}

	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != fake.body {
		t.Errorf("Fetch = %q, want %q", data, fake.body)
	}
	if fake.gotBucket != "backups" || fake.gotKey != "beads/issues.jsonl" {
		t.Errorf("requested %s/%s", fake.gotBucket, fake.gotKey)
	}
}

func TestFetch_Error(t *testing.T) {
	fake := &fakeGetObject{err: errors.New("access denied")}
	src := &S3Source{client: fake, bucket: "backups", key: "k"}

	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch succeeded, want error")
	}
}

func TestFetchTo(t *testing.T) {
	fake := &fakeGetObject{body: `{"id":"bd-1"}` + "\n"}
	src := &S3Source{client: fake, bucket: "b", key: "k"}

	path := filepath.Join(t.TempDir(), "issues.jsonl")
	if err := src.FetchTo(context.Background(), path); err != nil {
		t.Fatalf("FetchTo: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != fake.body {
		t.Errorf("file content = %q, want %q", data, fake.body)
	}

	// No temp file debris after a successful fetch.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the snapshot", len(entries))
	}
}

func TestFetchTo_ErrorLeavesTargetAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.jsonl")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &S3Source{client: &fakeGetObject{err: errors.New("boom")}, bucket: "b", key: "k"}
	if err := src.FetchTo(context.Background(), path); err == nil {
		t.Fatal("FetchTo succeeded, want error")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous" {
		t.Errorf("failed fetch clobbered the target: %q", data)
	}
}
