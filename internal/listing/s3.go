package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/dirnav/internal/pathutil"
)

// S3Service lists a bucket as a directory tree, treating "/" in object keys
// as the separator. Directories are common prefixes.
type S3Service struct {
	client     s3.ListObjectsV2APIClient
	bucket     string
	showHidden bool
}

// NewS3Service creates a listing service for bucket.
func NewS3Service(client s3.ListObjectsV2APIClient, bucket string, showHidden bool) *S3Service {
	return &S3Service{client: client, bucket: bucket, showHidden: showHidden}
}

// prefixFor maps a navigator path to an object key prefix: "/" becomes ""
// and "/a/b" becomes "a/b/".
func prefixFor(p string) string {
	p = pathutil.Normalize(p)
	if p == pathutil.Root {
		return ""
	}
	return p[1:] + "/"
}

// isEntryName rejects key segments that cannot be addressed as a path:
// empty ones and the "." and ".." segments, which Normalize would fold away.
func isEntryName(name string) bool {
	return name != "" && name != "." && name != ".."
}

// ListDirectory lists the objects and common prefixes directly below p.
func (s *S3Service) ListDirectory(ctx context.Context, p string) (*DirectoryContents, error) {
	p = pathutil.Normalize(p)
	prefix := prefixFor(p)

	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Delimiter: aws.String("/"),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	logrus.Debugf("listing: s3://%s/%s", s.bucket, prefix)

	contents := newContents(p)
	empty := true

	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s/%s: %w", s.bucket, prefix, err)
		}

		for _, cp := range page.CommonPrefixes {
			empty = false
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if !isEntryName(name) || (!s.showHidden && isHidden(name)) {
				continue
			}
			contents.Directories = append(contents.Directories, Directory{
				Name: name,
				Path: pathutil.Join(p, name),
			})
		}

		for _, obj := range page.Contents {
			empty = false
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, prefix)
			// "a/b/" placeholder objects stand for the directory itself
			if !isEntryName(name) || (!s.showHidden && isHidden(name)) {
				continue
			}
			contents.Files = append(contents.Files, FileInfo{
				Name:         name,
				Path:         pathutil.Join(p, name),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	// S3 has no real directories; an empty non-root prefix does not exist
	if empty && prefix != "" {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	}

	contents.Sort()
	return contents, nil
}
