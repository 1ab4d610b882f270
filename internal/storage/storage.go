// Package storage manages product image blobs in the MinIO bucket: uploads,
// public URL derivation, and best-effort cleanup of orphaned objects when a
// product's image list changes.
package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"pixelpanda_back_end/internal/database"
)

// MaxUploadSize caps a single image upload.
const MaxUploadSize = 10 << 20 // 10 MiB

var allowedMimeTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/webp":    true,
	"image/svg+xml": true,
}

func Bucket() string {
	if b := os.Getenv("MINIO_BUCKET"); b != "" {
		return b
	}
	return "products"
}

func publicBase() string {
	if base := os.Getenv("MINIO_PUBLIC_URL"); base != "" {
		return strings.TrimRight(base, "/")
	}
	return "http://" + os.Getenv("MINIO_ENDPOINT")
}

// PublicURL returns the public address of an object in the managed bucket.
func PublicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", publicBase(), Bucket(), objectName)
}

// ExtractStoragePath maps a public URL back to the object path inside the
// managed bucket: the substring after the "/<bucket>/" marker. Returns false
// for foreign or malformed URLs, which the callers skip rather than retry.
func ExtractStoragePath(rawURL string) (string, bool) {
	marker := "/" + Bucket() + "/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", false
	}
	path := rawURL[idx+len(marker):]
	if path == "" {
		return "", false
	}
	return path, true
}

// IsManaged reports whether a URL points into the managed bucket.
func IsManaged(rawURL string) bool {
	_, ok := ExtractStoragePath(rawURL)
	return ok
}

// RemovedImages returns the managed-bucket entries present in oldImages but
// absent from newImages — the blobs orphaned by a product update.
func RemovedImages(oldImages, newImages []string) []string {
	kept := make(map[string]bool, len(newImages))
	for _, img := range newImages {
		kept[img] = true
	}

	var removed []string
	for _, img := range oldImages {
		if !kept[img] && IsManaged(img) {
			removed = append(removed, img)
		}
	}
	return removed
}

// ObjectRemover is the slice of the MinIO client used for batch deletion.
type ObjectRemover interface {
	RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError
}

// Cleanup batch-deletes the given image URLs from the managed bucket,
// best-effort: failures are logged and never propagated, so the caller's
// database write proceeds regardless.
func Cleanup(ctx context.Context, urls []string) {
	CleanupWith(ctx, database.MinioClient, urls)
}

// CleanupWith is Cleanup against an injectable remover. Returns the number of
// objects submitted for deletion.
func CleanupWith(ctx context.Context, rm ObjectRemover, urls []string) int {
	if rm == nil || len(urls) == 0 {
		return 0
	}

	objectsCh := make(chan minio.ObjectInfo, len(urls))
	submitted := 0
	for _, u := range urls {
		path, ok := ExtractStoragePath(u)
		if !ok {
			continue
		}
		objectsCh <- minio.ObjectInfo{Key: path}
		submitted++
	}
	close(objectsCh)

	if submitted == 0 {
		return 0
	}

	log.Printf("🗑️ Removing %d orphaned image(s) from bucket %s", submitted, Bucket())
	for rmErr := range rm.RemoveObjects(ctx, Bucket(), objectsCh, minio.RemoveObjectsOptions{}) {
		log.Printf("⚠️ Blob cleanup failed for %s: %v", rmErr.ObjectName, rmErr.Err)
	}
	return submitted
}

// UploadFile stores a single uploaded file under a random name and returns
// its public URL.
func UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxUploadSize {
		return "", fmt.Errorf("file exceeds the %d MiB limit", MaxUploadSize>>20)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		return "", fmt.Errorf("unsupported file type %q", contentType)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := uuid.NewString() + filepath.Ext(fileHeader.Filename)

	_, err = database.MinioClient.PutObject(ctx, Bucket(), objectName, f, fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	return PublicURL(objectName), nil
}
