package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMinioStorage_Validation(t *testing.T) {
	_, err := NewMinioStorage(MinioOptions{AccessKey: "a", SecretKey: "b"})
	assert.Error(t, err)

	_, err = NewMinioStorage(MinioOptions{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}

func TestMinioStorage_ObjectURL(t *testing.T) {
	storage, err := NewMinioStorage(MinioOptions{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "goaguide",
		PublicURL: "http://localhost:9000/goaguide",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/goaguide/reviews/abc.png", storage.ObjectURL("reviews/abc.png"))
}
