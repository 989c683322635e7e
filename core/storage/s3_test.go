package storage

import "testing"

func TestNewS3Storage(t *testing.T) {
	if _, err := NewS3Storage(S3Config{Region: "us-east-1"}); err == nil {
		t.Error("expected an error without a bucket")
	}
	if _, err := NewS3Storage(S3Config{Bucket: "exports", Region: "us-east-1"}); err == nil {
		t.Error("expected an error without credentials")
	}
	if _, err := NewS3Storage(S3Config{Bucket: "exports", Region: "us-east-1", AccessKeyID: "key"}); err == nil {
		t.Error("expected an error without a secret")
	}

	s, err := NewS3Storage(S3Config{
		Bucket:          "exports",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("NewS3Storage() error: %v", err)
	}
	if s.bucket != "exports" {
		t.Errorf("bucket = %q", s.bucket)
	}
}
