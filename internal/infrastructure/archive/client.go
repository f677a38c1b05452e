// Package archive keeps a copy of generated assembly documents in S3-compatible storage
package archive

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// Config holds archive bucket configuration
type Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Client uploads assembly documents to one bucket
type Client struct {
	api    *minio.Client
	bucket string
	prefix string
	now    func() time.Time
}

var _ domain.DocumentArchive = (*Client)(nil)

// New creates an archive client from config
func New(cfg Config) (*Client, error) {
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArchiveFailure, err)
	}

	return &Client{
		api:    api,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		now:    time.Now,
	}, nil
}

// StoreDocument uploads a document under <prefix>/<yyyy>/<mm>/<timestamp>_<name>
// so repeated exports of one job never overwrite each other.
func (c *Client) StoreDocument(ctx context.Context, name string, document string) error {
	key := c.objectKey(name)
	_, err := c.api.PutObject(ctx, c.bucket, key, strings.NewReader(document), int64(len(document)),
		minio.PutObjectOptions{ContentType: "application/xml"})
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", domain.ErrArchiveFailure, key, err)
	}
	return nil
}

func (c *Client) objectKey(name string) string {
	now := c.now().UTC()
	return path.Join(c.prefix, now.Format("2006"), now.Format("01"), now.Format("20060102T150405Z")+"_"+name)
}
