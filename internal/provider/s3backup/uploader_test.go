package s3backup

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects  map[string][]byte
	metadata map[string]map[string]string
	modified map[string]time.Time
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, metadata: map[string]map[string]string{}, modified: map[string]time.Time{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Key)
	f.objects[key] = b
	f.metadata[key] = in.Metadata
	f.modified[key] = time.Now().Add(time.Duration(len(f.objects)) * time.Second)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	return &s3.GetObjectOutput{
		Body:     io.NopCloser(bytes.NewReader(f.objects[key])),
		Metadata: f.metadata[key],
	}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for key, b := range f.objects {
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(int64(len(b))),
			LastModified: aws.Time(f.modified[key]),
		})
	}
	return out, nil
}

func TestUploadListDownload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	local := filepath.Join(dir, "caloriecam-20260301-100000.db")
	if err := os.WriteFile(local, []byte("sqlite bytes"), 0o644); err != nil {
		t.Fatalf("write local backup: %v", err)
	}

	fake := newFakeS3()
	u := &Uploader{Client: fake, Bucket: "bucket", Prefix: "/backups/"}
	key, err := u.Upload(context.Background(), local, "abc123")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if key != "backups/caloriecam-20260301-100000.db" {
		t.Fatalf("unexpected key %q", key)
	}
	if fake.metadata[key]["sha256"] != "abc123" {
		t.Fatalf("expected checksum metadata, got %+v", fake.metadata[key])
	}

	list, err := u.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Key != key || list[0].SizeBytes != int64(len("sqlite bytes")) {
		t.Fatalf("unexpected list: %+v", list)
	}

	dst := filepath.Join(dir, "restore", "copy.db")
	if err := u.Download(context.Background(), key, dst); err != nil {
		t.Fatalf("download: %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil || string(b) != "sqlite bytes" {
		t.Fatalf("unexpected downloaded bytes %q err=%v", b, err)
	}
	sum, err := os.ReadFile(dst + ".sha256")
	if err != nil || string(sum) != "abc123\n" {
		t.Fatalf("unexpected checksum sidecar %q err=%v", sum, err)
	}
}
