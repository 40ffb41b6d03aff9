package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresigner(t *testing.T, domain string) *S3Presigner {
	t.Helper()
	p, err := NewS3Presigner(context.Background(), Config{
		Bucket:          "avatars-bucket",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		PublicDomain:    domain,
	})
	require.NoError(t, err)
	return p
}

func TestPresignPut(t *testing.T) {
	p := newTestPresigner(t, "")

	raw, err := p.PresignPut(context.Background(), "avatars/1/abc.png", "image/png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/avatars-bucket/avatars/1/abc.png", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.True(t, strings.Contains(u.Query().Get("X-Amz-SignedHeaders"), "host"))
}

func TestPresignGet(t *testing.T) {
	p := newTestPresigner(t, "")

	raw, err := p.PresignGet(context.Background(), "avatars/1/abc.png")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/avatars-bucket/avatars/1/abc.png", u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}

func TestPublicURL(t *testing.T) {
	assert.Empty(t, newTestPresigner(t, "").PublicURL("k"))
	assert.Equal(t, "https://cdn.example.com/avatars/1/a.png",
		newTestPresigner(t, "cdn.example.com/").PublicURL("avatars/1/a.png"))
	assert.Equal(t, "http://cdn.local/a.png",
		newTestPresigner(t, "http://cdn.local").PublicURL("a.png"))
}
