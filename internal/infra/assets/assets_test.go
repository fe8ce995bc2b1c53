package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnolibre/internal/httperr"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebPScalesDown(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 1000, 500)), 200)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 40, 60)), 200)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), 200)
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Upload(t *testing.T) {
	fake := &fakePutter{}
	u := NewS3Uploader(S3Options{Bucket: "logos", Region: "sa-east-1", Endpoint: "http://minio:9000/"})
	u.client = fake

	url, err := u.Upload(context.Background(), "shops/demo/logo.webp", "image/webp", []byte("data"))
	require.NoError(t, err)

	assert.Equal(t, "http://minio:9000/logos/shops/demo/logo.webp", url)
	assert.Equal(t, "logos", *fake.in.Bucket)
	assert.Equal(t, "image/webp", *fake.in.ContentType)
	assert.Equal(t, []byte("data"), fake.body)
}

func TestS3DefaultPublicURL(t *testing.T) {
	u := NewS3Uploader(S3Options{Bucket: "logos", Region: "us-east-1"})
	assert.Equal(t, "https://logos.s3.us-east-1.amazonaws.com", u.publicURL)
}
