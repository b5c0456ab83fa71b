package s3backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// API is the subset of the S3 client used for backups.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Uploader struct {
	Client API
	Bucket string
	Prefix string
}

type RemoteBackup struct {
	Key          string    `json:"key"`
	SizeBytes    int64     `json:"size_bytes"`
	LastModified time.Time `json:"last_modified"`
}

const checksumMetadataKey = "sha256"

// New loads the default AWS configuration (environment, shared config, or
// instance role) and returns an uploader for bucket.
func New(ctx context.Context, bucket, prefix, region string) (*Uploader, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	opts := []func(*config.LoadOptions) error{}
	if strings.TrimSpace(region) != "" {
		opts = append(opts, config.WithRegion(region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Uploader{Client: s3.NewFromConfig(awsCfg), Bucket: bucket, Prefix: prefix}, nil
}

func (u *Uploader) key(name string) string {
	prefix := strings.Trim(strings.TrimSpace(u.Prefix), "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Upload stores the backup file under the configured prefix with its
// checksum as object metadata.
func (u *Uploader) Upload(ctx context.Context, localPath, checksum string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open backup for upload: %w", err)
	}
	defer f.Close()

	key := u.key(filepath.Base(localPath))
	in := &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/vnd.sqlite3"),
	}
	if checksum != "" {
		in.Metadata = map[string]string{checksumMetadataKey: checksum}
	}
	if _, err := u.Client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("upload backup to s3://%s/%s: %w", u.Bucket, key, err)
	}
	return key, nil
}

// List returns the remote backups under the prefix, newest first.
func (u *Uploader) List(ctx context.Context) ([]RemoteBackup, error) {
	prefix := strings.Trim(strings.TrimSpace(u.Prefix), "/")
	if prefix != "" {
		prefix += "/"
	}
	out := make([]RemoteBackup, 0)
	var token *string
	for {
		page, err := u.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(u.Bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list s3 backups: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".db") {
				continue
			}
			out = append(out, RemoteBackup{
				Key:          key,
				SizeBytes:    aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
		if !aws.ToBool(page.IsTruncated) || page.NextContinuationToken == nil {
			break
		}
		token = page.NextContinuationToken
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastModified.After(out[j].LastModified) })
	return out, nil
}

// Download writes the object at key to localPath along with a checksum
// sidecar when the object carries one.
func (u *Uploader) Download(ctx context.Context, key, localPath string) error {
	obj, err := u.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("download s3://%s/%s: %w", u.Bucket, key, err)
	}
	defer obj.Body.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, obj.Body); err != nil {
		return fmt.Errorf("write download file: %w", err)
	}
	if sum := obj.Metadata[checksumMetadataKey]; sum != "" {
		if err := os.WriteFile(localPath+".sha256", []byte(sum+"\n"), 0o644); err != nil {
			return fmt.Errorf("write checksum file: %w", err)
		}
	}
	return nil
}
