package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Store 快照导出用的对象存储抽象
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
}

type OSSStore struct {
	bucket *oss.Bucket
}

func NewOSS(endpoint, accessKeyID, accessKeySecret, bucketName string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %q: %w", bucketName, err)
	}
	return &OSSStore{bucket: bucket}, nil
}

// Put 覆盖语义由对象名保证唯一来规避；SDK 自身不接收 ctx
func (s *OSSStore) Put(_ context.Context, name string, data []byte) error {
	if err := s.bucket.PutObject(name, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("put object %q: %w", name, err)
	}
	return nil
}
