package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "http://minio.local:9000/products/"

func TestExtractStoragePath(t *testing.T) {
	t.Setenv("MINIO_BUCKET", "products")

	path, ok := ExtractStoragePath(base + "abc123.png")
	require.True(t, ok)
	assert.Equal(t, "abc123.png", path)

	path, ok = ExtractStoragePath(base + "nested/dir/img.webp")
	require.True(t, ok)
	assert.Equal(t, "nested/dir/img.webp", path)
}

func TestExtractStoragePathForeignOrMalformed(t *testing.T) {
	t.Setenv("MINIO_BUCKET", "products")

	cases := []string{
		"https://cdn.example.com/assets/img.png", // foreign host, no marker
		"http://minio.local:9000/other-bucket/img.png",
		base, // marker present but empty remainder
		"",
		"not a url at all",
	}
	for _, raw := range cases {
		_, ok := ExtractStoragePath(raw)
		assert.False(t, ok, "url %q", raw)
	}
}

func TestRemovedImagesDiff(t *testing.T) {
	t.Setenv("MINIO_BUCKET", "products")

	a := base + "a.png"
	b := base + "b.png"
	cc := base + "c.png"
	d := "https://cdn.example.com/d.png" // not in the managed bucket

	removed := RemovedImages([]string{a, b, cc}, []string{b, cc, d})
	assert.Equal(t, []string{a}, removed, "only the dropped managed image is cleaned up")

	// Deleting a product treats every managed image as removed.
	removed = RemovedImages([]string{a, b, d}, nil)
	assert.Equal(t, []string{a, b}, removed)
}

type fakeRemover struct {
	bucket string
	keys   []string
	fail   bool
}

func (f *fakeRemover) RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	f.bucket = bucketName
	out := make(chan minio.RemoveObjectError)
	go func() {
		defer close(out)
		for obj := range objectsCh {
			f.keys = append(f.keys, obj.Key)
			if f.fail {
				out <- minio.RemoveObjectError{ObjectName: obj.Key, Err: errors.New("storage unavailable")}
			}
		}
	}()
	return out
}

func TestCleanupSubmitsManagedObjects(t *testing.T) {
	t.Setenv("MINIO_BUCKET", "products")
	rm := &fakeRemover{}

	n := CleanupWith(context.Background(), rm, []string{
		base + "a.png",
		"https://cdn.example.com/foreign.png",
		base + "b.png",
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, "products", rm.bucket)
	assert.Equal(t, []string{"a.png", "b.png"}, rm.keys)
}

func TestCleanupBestEffortOnFailure(t *testing.T) {
	t.Setenv("MINIO_BUCKET", "products")
	rm := &fakeRemover{fail: true}

	// Storage failures are logged and swallowed; the caller's database write
	// proceeds regardless.
	n := CleanupWith(context.Background(), rm, []string{base + "a.png", base + "b.png"})
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a.png", "b.png"}, rm.keys)
}

func TestCleanupNothingManaged(t *testing.T) {
	t.Setenv("MINIO_BUCKET", "products")
	rm := &fakeRemover{}

	n := CleanupWith(context.Background(), rm, []string{"https://cdn.example.com/x.png"})
	assert.Equal(t, 0, n)
	assert.Empty(t, rm.keys)
}

func TestCleanupNilRemover(t *testing.T) {
	assert.Equal(t, 0, CleanupWith(context.Background(), nil, []string{base + "a.png"}))
}
