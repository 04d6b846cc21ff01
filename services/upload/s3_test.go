package uploadsvc

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/beacon/core"
)

// s3Mock captures the PutObject call instead of hitting AWS.
type s3Mock struct {
	s3iface.S3API
	lastInput *s3.PutObjectInput
	err       error
}

func (m *s3Mock) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newS3TestStore(mock *s3Mock) *s3Store {
	return &s3Store{client: mock, bucket: "city-bids", region: "us-east-1", logger: nopLogger{}}
}

func TestS3Store_Save(t *testing.T) {
	mock := &s3Mock{}
	store := newS3TestStore(mock)

	doc := &core.Document{
		Content:     strings.NewReader("%PDF-1.4"),
		Filename:    "bid.pdf",
		ContentType: "application/pdf",
		RefID:       "42",
	}
	name, href, err := store.Save(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "opportunity-42.pdf", name)
	assert.Equal(t, "https://city-bids.s3.us-east-1.amazonaws.com/opportunity-42.pdf", href)

	require.NotNil(t, mock.lastInput)
	assert.Equal(t, "city-bids", aws.StringValue(mock.lastInput.Bucket))
	assert.Equal(t, "opportunity-42.pdf", aws.StringValue(mock.lastInput.Key))
	assert.Equal(t, s3.BucketCannedACLPublicRead, aws.StringValue(mock.lastInput.ACL))
	assert.Equal(t, "application/pdf", aws.StringValue(mock.lastInput.ContentType))
	assert.Contains(t, aws.StringValue(mock.lastInput.CacheControl), "public, max-age=")
	assert.NotNil(t, mock.lastInput.Expires)

	body, err := io.ReadAll(mock.lastInput.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
}

func TestS3Store_Save_generatesRefID(t *testing.T) {
	mock := &s3Mock{}
	store := newS3TestStore(mock)

	doc := &core.Document{Content: strings.NewReader("x"), Filename: "bid.pdf"}
	name, _, err := store.Save(context.Background(), doc)
	require.NoError(t, err)

	// opportunity-<6 random chars>.pdf
	assert.Regexp(t, `^opportunity-[a-z0-9]{6}\.pdf$`, name)
}

func TestS3Store_Save_defaultsContentType(t *testing.T) {
	mock := &s3Mock{}
	store := newS3TestStore(mock)

	doc := &core.Document{Content: strings.NewReader("x"), Filename: "bid.bin", RefID: "7"}
	_, _, err := store.Save(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", aws.StringValue(mock.lastInput.ContentType))
}

func TestS3Store_Save_noDocument(t *testing.T) {
	mock := &s3Mock{}
	store := newS3TestStore(mock)

	name, href, err := store.Save(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Empty(t, href)
	assert.Nil(t, mock.lastInput)
}

func TestS3Store_Save_uploadError(t *testing.T) {
	mock := &s3Mock{err: errors.New("access denied")}
	store := newS3TestStore(mock)

	doc := &core.Document{Content: strings.NewReader("x"), Filename: "bid.pdf", RefID: "7"}
	_, _, err := store.Save(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploading document to S3")
}

func TestS3Store_publicURL_noRegion(t *testing.T) {
	store := &s3Store{bucket: "city-bids"}
	assert.Equal(t, "https://city-bids.s3.amazonaws.com/key.pdf", store.publicURL("key.pdf"))
}
