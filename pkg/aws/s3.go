package aws

import (
	"fmt"
	"time"

	"github.com/gofiber/storage/s3/v2"

	"receptbox/pkg/config"
)

type S3 struct {
	bucket   *s3.Storage
	endpoint string
	name     string
	region   string
}

func NewS3Bucket(cfg *config.AppConfig) *S3 {
	bucket := s3.New(s3.Config{
		Endpoint: cfg.AWSEndpoint,
		Bucket:   cfg.AWSBucket,
		Region:   cfg.AWSDefaultRegion,
		Credentials: s3.Credentials{
			AccessKey:       cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
		MaxAttempts:    3,
		RequestTimeout: time.Second * 10,
		Reset:          false,
	})

	return &S3{
		bucket:   bucket,
		endpoint: cfg.AWSEndpoint,
		name:     cfg.AWSBucket,
		region:   cfg.AWSDefaultRegion,
	}
}

func (s *S3) Upload(key string, data []byte) error {
	return s.bucket.Set(key, data, time.Hour*100)
}

func (s *S3) Download(key string) ([]byte, error) {
	return s.bucket.Get(key)
}

func (s *S3) Delete(key string) error {
	return s.bucket.Delete(key)
}

// URL returns the durable public locator for an uploaded key. For
// MinIO-style deployments the endpoint form is used, otherwise the standard
// AWS S3 URL.
func (s *S3) URL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.name, key)
	}

	if s.region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.name, s.region, key)
	}

	return key
}
