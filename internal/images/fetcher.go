// Package images downloads recipe images and scales them into thumbnails.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

// DefaultHeight is the thumbnail height used when none is given.
const DefaultHeight = 500

const (
	// MaxHeight is the largest thumbnail height Scale accepts.
	MaxHeight = 2000
	// MaxWidth bounds the thumbnail width derived from the aspect ratio.
	MaxWidth = 4000
)

// maxImageSize bounds a downloaded image.
const maxImageSize = 10 * 1024 * 1024

// maxSourcePixels bounds the decoded size of a source image.
const maxSourcePixels = 40_000_000

var (
	// ErrUnsupportedImage is returned for image formats that cannot be re-encoded.
	ErrUnsupportedImage = errors.New("unsupported image format")
	// ErrTooLarge is returned when the source or the requested thumbnail
	// exceeds the size limits.
	ErrTooLarge = errors.New("image dimensions too large")
)

// Fetcher retrieves recipe images over HTTP
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Thumbnail is a re-encoded, scaled image.
type Thumbnail struct {
	Data        []byte
	Format      string
	ContentType string
	Width       int
	Height      int
}

// Download fetches the raw bytes of an image.
func (f *Fetcher) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) > maxImageSize {
		return nil, fmt.Errorf("image too large (max %d bytes)", maxImageSize)
	}

	return imageData, nil
}

// Thumbnail downloads an image and scales it to height, keeping the aspect
// ratio. JPEG input stays JPEG, everything else becomes PNG.
func (f *Fetcher) Thumbnail(ctx context.Context, imageURL string, height uint) (*Thumbnail, error) {
	if height == 0 {
		height = DefaultHeight
	}

	data, err := f.Download(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	thumb, err := Scale(data, height)
	if err != nil {
		return nil, err
	}

	slog.Debug("Thumbnail created", "url", imageURL, "format", thumb.Format, "width", thumb.Width, "height", thumb.Height)
	return thumb, nil
}

// Scale decodes data and resizes it to height. Heights above MaxHeight,
// derived widths above MaxWidth and sources over maxSourcePixels fail with
// ErrTooLarge before any pixels are allocated.
func Scale(data []byte, height uint) (*Thumbnail, error) {
	if height > MaxHeight {
		return nil, fmt.Errorf("%w: height %d exceeds %d", ErrTooLarge, height, MaxHeight)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxSourcePixels {
		return nil, fmt.Errorf("%w: source is %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	aspectRatio := float64(cfg.Width) / float64(cfg.Height)
	scaledWidth := float64(height)*aspectRatio + 0.5
	if scaledWidth >= MaxWidth+1 {
		return nil, fmt.Errorf("%w: width %.0f exceeds %d", ErrTooLarge, scaledWidth, MaxWidth)
	}
	width := uint(scaledWidth)
	if width == 0 {
		width = 1
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := resize.Resize(width, height, img, resize.Lanczos3)

	var buf bytes.Buffer
	thumb := &Thumbnail{
		Width:  resized.Bounds().Dx(),
		Height: resized.Bounds().Dy(),
	}
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
		thumb.Format, thumb.ContentType = "jpeg", "image/jpeg"
	case "png", "gif":
		err = png.Encode(&buf, resized)
		thumb.Format, thumb.ContentType = "png", "image/png"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	thumb.Data = buf.Bytes()
	return thumb, nil
}
