package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// StorageClient wraps an S3-compatible bucket used for portfolio images.
type StorageClient struct {
	s3       *s3.S3
	bucket   string
	endpoint string
}

func NewStorageClient(endpoint, region, bucket, accessKey, secretKey string) (*StorageClient, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("storage session: %w", err)
	}
	return &StorageClient{s3: s3.New(sess), bucket: bucket, endpoint: endpoint}, nil
}

// UploadFile stores the file under folder/<uuid><ext> with public read
// access and returns the resulting URL. The original file name only
// contributes its extension so uploads can never collide.
func (c *StorageClient) UploadFile(ctx context.Context, file io.ReadSeeker, fileName, folder string) (string, error) {
	ext := filepath.Ext(fileName)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key), nil
}
