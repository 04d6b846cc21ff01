package uploadsvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"

	"github.com/trezcool/beacon/core"
)

const (
	keyPrefix = "opportunity-"

	// documents are immutable once uploaded (edits re-key or overwrite
	// wholesale), so downstream caches may hold them as long as they like
	maxCacheAge = 10 * 365 * 24 * time.Hour
)

// s3Store uploads documents to a public S3 bucket.
type s3Store struct {
	client s3iface.S3API
	bucket string
	region string
	logger core.Logger
}

var _ core.DocumentStore = (*s3Store)(nil)

func NewS3Store(conf *core.Config, logger core.Logger) (*s3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(conf.Upload.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			conf.Upload.AWSAccessKeyID, conf.Upload.AWSSecretAccessKey, "",
		),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening AWS session")
	}
	return &s3Store{
		client: s3.New(sess),
		bucket: conf.Upload.Destination,
		region: conf.Upload.AWSRegion,
		logger: logger,
	}, nil
}

func (s s3Store) Save(ctx context.Context, doc *core.Document) (string, string, error) {
	if doc == nil || doc.Content == nil {
		return "", "", nil
	}
	if sanitizeFilename(doc.Filename) == "" {
		return "", "", nil
	}

	ref := doc.RefID
	if ref == "" {
		ref = core.RandomID(refIDLength)
	}
	key := fmt.Sprintf("%s%s.pdf", keyPrefix, ref)

	var buff bytes.Buffer
	if _, err := io.Copy(&buff, doc.Content); err != nil {
		return "", "", errors.Wrap(err, "reading document")
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}

	maxAge := int64(maxCacheAge / time.Second)
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(buff.Bytes()),
		ACL:          aws.String(s3.BucketCannedACLPublicRead),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(fmt.Sprintf("public, max-age=%d", maxAge)),
		Expires:      aws.Time(time.Now().Add(maxCacheAge)),
	})
	if err != nil {
		return "", "", errors.Wrap(err, "uploading document to S3")
	}
	return key, s.publicURL(key), nil
}

func (s s3Store) publicURL(key string) string {
	if s.region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
