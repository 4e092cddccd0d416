package listing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockS3Client mocks the ListObjectsV2 call used by S3Service
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Users", "alice", "projects"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Users", "alice", ".cache"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Users", "alice", "notes.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Users", "alice", "a.png"), []byte("png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Users", "alice", ".profile"), []byte("x"), 0644))
	return root
}

func TestLocalService_ListDirectory(t *testing.T) {
	svc := NewLocalService(makeTree(t), false)

	got, err := svc.ListDirectory(context.Background(), "/Users/alice/")
	require.NoError(t, err)

	assert.Equal(t, "/Users/alice", got.CurrentPath)
	require.NotNil(t, got.ParentPath)
	assert.Equal(t, "/Users", *got.ParentPath)
	assert.Equal(t, []Directory{{Name: "projects", Path: "/Users/alice/projects"}}, got.Directories)

	require.Len(t, got.Files, 2)
	assert.Equal(t, "a.png", got.Files[0].Name)
	assert.Equal(t, "/Users/alice/a.png", got.Files[0].Path)
	assert.Equal(t, "notes.txt", got.Files[1].Name)
	assert.Equal(t, int64(5), got.Files[1].Size)
	assert.False(t, got.Files[1].LastModified.IsZero())
}

func TestLocalService_ShowHidden(t *testing.T) {
	svc := NewLocalService(makeTree(t), true)

	got, err := svc.ListDirectory(context.Background(), "/Users/alice")
	require.NoError(t, err)
	assert.Len(t, got.Directories, 2)
	assert.Len(t, got.Files, 3)
	assert.Equal(t, 5, got.Len())
}

func TestLocalService_Root(t *testing.T) {
	svc := NewLocalService(makeTree(t), false)

	got, err := svc.ListDirectory(context.Background(), "/")
	require.NoError(t, err)
	assert.Nil(t, got.ParentPath)
	assert.Equal(t, []Directory{{Name: "Users", Path: "/Users"}}, got.Directories)

	// ".." cannot escape the root
	got, err = svc.ListDirectory(context.Background(), "/../..")
	require.NoError(t, err)
	assert.Equal(t, "/", got.CurrentPath)
}

func TestLocalService_Errors(t *testing.T) {
	svc := NewLocalService(makeTree(t), false)

	_, err := svc.ListDirectory(context.Background(), "/nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListDirectory(context.Background(), "/Users/alice/notes.txt")
	assert.ErrorIs(t, err, ErrNotDirectory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.ListDirectory(ctx, "/")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestS3Service_ListDirectory(t *testing.T) {
	modified := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	client := &MockS3Client{}
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.Prefix) == "photos/" && aws.ToString(in.Delimiter) == "/" && aws.ToString(in.Bucket) == "media"
	})).Return(&s3.ListObjectsV2Output{
		CommonPrefixes: []types.CommonPrefix{
			{Prefix: aws.String("photos/2024/")},
			{Prefix: aws.String("photos/.trash/")},
		},
		Contents: []types.Object{
			{Key: aws.String("photos/"), Size: aws.Int64(0)},
			{Key: aws.String("photos/b.jpg"), Size: aws.Int64(2048), LastModified: aws.Time(modified)},
			{Key: aws.String("photos/a.jpg"), Size: aws.Int64(1024), LastModified: aws.Time(modified)},
		},
		IsTruncated: aws.Bool(false),
	}, nil).Once()

	svc := NewS3Service(client, "media", false)
	got, err := svc.ListDirectory(context.Background(), "/photos")
	require.NoError(t, err)

	assert.Equal(t, "/photos", got.CurrentPath)
	assert.Equal(t, []Directory{{Name: "2024", Path: "/photos/2024"}}, got.Directories)
	require.Len(t, got.Files, 2)
	assert.Equal(t, "a.jpg", got.Files[0].Name)
	assert.Equal(t, "/photos/a.jpg", got.Files[0].Path)
	assert.Equal(t, int64(1024), got.Files[0].Size)
	assert.Equal(t, modified, got.Files[0].LastModified)

	client.AssertExpectations(t)
}

func TestS3Service_SkipsDotSegments(t *testing.T) {
	client := &MockS3Client{}
	client.On("ListObjectsV2", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
		CommonPrefixes: []types.CommonPrefix{
			{Prefix: aws.String("a/../")},
			{Prefix: aws.String("a/./")},
			{Prefix: aws.String("a/.cache/")},
		},
		Contents: []types.Object{
			{Key: aws.String("a/.."), Size: aws.Int64(1)},
			{Key: aws.String("a/."), Size: aws.Int64(1)},
			{Key: aws.String("a/.env"), Size: aws.Int64(1)},
		},
		IsTruncated: aws.Bool(false),
	}, nil).Once()

	svc := NewS3Service(client, "media", true)
	got, err := svc.ListDirectory(context.Background(), "/a")
	require.NoError(t, err)

	assert.Equal(t, []Directory{{Name: ".cache", Path: "/a/.cache"}}, got.Directories)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "/a/.env", got.Files[0].Path)
}

func TestS3Service_RootAndPagination(t *testing.T) {
	client := &MockS3Client{}
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.Prefix == nil && in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		CommonPrefixes:        []types.CommonPrefix{{Prefix: aws.String("docs/")}},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("page-2"),
	}, nil).Once()
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "page-2"
	})).Return(&s3.ListObjectsV2Output{
		Contents:    []types.Object{{Key: aws.String("readme.md"), Size: aws.Int64(10)}},
		IsTruncated: aws.Bool(false),
	}, nil).Once()

	svc := NewS3Service(client, "media", false)
	got, err := svc.ListDirectory(context.Background(), "/")
	require.NoError(t, err)

	assert.Nil(t, got.ParentPath)
	assert.Equal(t, []Directory{{Name: "docs", Path: "/docs"}}, got.Directories)
	assert.Equal(t, "readme.md", got.Files[0].Name)
	client.AssertExpectations(t)
}

func TestS3Service_Errors(t *testing.T) {
	client := &MockS3Client{}
	client.On("ListObjectsV2", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
	}, nil).Once()
	client.On("ListObjectsV2", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()

	svc := NewS3Service(client, "media", false)

	_, err := svc.ListDirectory(context.Background(), "/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListDirectory(context.Background(), "/photos")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestPrefixFor(t *testing.T) {
	assert.Equal(t, "", prefixFor("/"))
	assert.Equal(t, "", prefixFor(""))
	assert.Equal(t, "a/b/", prefixFor("/a//b/"))
}

func TestHTTPService_ListDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, RouteListDirectory, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ListDirectoryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid directory path"})
			return
		}

		parent := "/Users"
		json.NewEncoder(w).Encode(DirectoryContents{
			CurrentPath: req.Path,
			ParentPath:  &parent,
			Directories: []Directory{{Name: "projects", Path: req.Path + "/projects"}},
		})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL+"/", HTTPOptions{MaxRetries: 0})

	got, err := svc.ListDirectory(context.Background(), "/Users/alice/")
	require.NoError(t, err)
	assert.Equal(t, "/Users/alice", got.CurrentPath)
	assert.Equal(t, "/Users", *got.ParentPath)
	assert.Equal(t, "/Users/alice/projects", got.Directories[0].Path)
	assert.NotNil(t, got.Files)

	_, err = svc.ListDirectory(context.Background(), "/missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Invalid directory path")
}

func TestHTTPService_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]Drive{{Path: "/", Device: "/dev/sda1", Fstype: "ext4"}})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, HTTPOptions{
		MaxRetries:   2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})

	drives, err := svc.ListDrives(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Drive{{Path: "/", Device: "/dev/sda1", Fstype: "ext4"}}, drives)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLocalDrives(t *testing.T) {
	d := &LocalDrives{partitions: func(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
		assert.False(t, all)
		return []disk.PartitionStat{
			{Device: "/dev/sdb1", Mountpoint: "/mnt/data", Fstype: "xfs"},
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		}, nil
	}}

	drives, err := d.ListDrives(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Drive{
		{Path: "/", Device: "/dev/sda1", Fstype: "ext4"},
		{Path: "/mnt/data", Device: "/dev/sdb1", Fstype: "xfs"},
	}, drives)

	failing := &LocalDrives{partitions: func(context.Context, bool) ([]disk.PartitionStat, error) {
		return nil, errors.New("boom")
	}}
	_, err = failing.ListDrives(context.Background())
	assert.Error(t, err)
}
