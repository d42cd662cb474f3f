package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

var (
	storageClient *storage.Client
	bucketName    string
)

// InitGCPStorage initializes the GCP Storage client for menu images
func InitGCPStorage(bucket string) error {
	if bucket == "" {
		return fmt.Errorf("GCP_BUCKET_NAME not set")
	}

	client, err := storage.NewClient(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create GCP storage client: %v", err)
	}

	storageClient = client
	bucketName = bucket
	return nil
}

// StorageReady reports whether image uploads are possible.
func StorageReady() bool {
	return storageClient != nil
}

// UploadMenuImage streams an image into the bucket under menu/ and returns its public URL
func UploadMenuImage(ctx context.Context, r io.Reader, fileName, contentType string) (string, error) {
	if storageClient == nil {
		return "", fmt.Errorf("GCP storage client not initialized")
	}

	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	objectName := "menu/" + hex.EncodeToString(randomBytes) + "-" + sanitizeFileName(fileName)

	writer := storageClient.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	writer.ContentType = contentType

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("GCS upload failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("GCS upload finalization failed: %v", err)
	}

	return PublicImageURL(objectName), nil
}

// DeleteMenuImage removes an image uploaded by UploadMenuImage. URLs outside
// the bucket, such as the stock photos of the default menu, are left alone.
func DeleteMenuImage(ctx context.Context, imageURL string) error {
	if storageClient == nil || imageURL == "" {
		return nil
	}
	prefix := PublicImageURL("")
	if !strings.HasPrefix(imageURL, prefix) {
		return nil
	}
	err := storageClient.Bucket(bucketName).Object(strings.TrimPrefix(imageURL, prefix)).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	return err
}

// PublicImageURL is the public address of an object in the bucket.
func PublicImageURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName)
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
	if name == "" || name == "." || name == "/" {
		return "image"
	}
	return name
}
