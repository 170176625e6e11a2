// Package avatar renders profiles' avatars with frames.
package avatar

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/indexer"
	"github.com/Decentr-net/resume/internal/metrics"
	"github.com/Decentr-net/resume/internal/storage"
)

//go:generate mockgen -destination=./mock/avatar.go -package=mock -source=avatar.go

// Size limits of rendered avatar in pixels.
const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256
)

const (
	contentType = "image/png"

	defaultTimeout = 30 * time.Second
)

var log = logrus.WithField("package", "avatar")

// ErrNotFound is returned when profile or it's avatar is not found.
var ErrNotFound = errors.New("not found")

// ErrInvalidSize is returned when requested size is out of limits.
var ErrInvalidSize = fmt.Errorf("size should be in [%d;%d]", MinSize, MaxSize)

// Renderer renders avatars.
type Renderer interface {
	// Render returns png of profile's avatar with profile's frame. Zero size means DefaultSize.
	Render(ctx context.Context, wallet string, size int) ([]byte, error)
}

type renderer struct {
	is storage.IndexStorage
	fs storage.FileStorage
	ix indexer.Indexer

	c           *http.Client
	maxFileSize int64
	timeout     time.Duration

	g singleflight.Group
}

// New returns new instance of Renderer.
// Renders are shared between concurrent requests and bounded by timeout instead of request's context.
func New(is storage.IndexStorage, fs storage.FileStorage, ix indexer.Indexer,
	c *http.Client, maxFileSize int64, timeout time.Duration) Renderer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &renderer{
		is:          is,
		fs:          fs,
		ix:          ix,
		c:           c,
		maxFileSize: maxFileSize,
		timeout:     timeout,
	}
}

// Key returns file storage path of rendered avatar.
func Key(wallet, avatarID string, frame entities.Frame, size int) string {
	if !frame.IsKnown() {
		frame = entities.FrameNone
	}

	return fmt.Sprintf("avatars/%s/%x-%s-%d.png", wallet, sha256.Sum256([]byte(avatarID)), frame, size)
}

func (r *renderer) Render(ctx context.Context, wallet string, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultSize
	}

	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}

	p, err := r.is.GetProfile(ctx, wallet)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if p.AvatarID == "" {
		return nil, ErrNotFound
	}

	key := Key(p.Wallet, p.AvatarID, p.Frame, size)

	ch := r.g.DoChan(key, func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		return r.render(rctx, key, p, size)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil // nolint
	}
}

func (r *renderer) render(ctx context.Context, key string, p *entities.Profile, size int) ([]byte, error) {
	data, err := r.read(ctx, key)
	switch {
	case err == nil:
		metrics.AvatarRendersTotal.WithLabelValues(metrics.CacheHit).Inc()
		return data, nil
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to read cached avatar: %w", err)
	}

	metrics.AvatarRendersTotal.WithLabelValues(metrics.CacheMiss).Inc()

	nft, err := r.ix.GetNFT(ctx, p.AvatarID)
	if err != nil {
		if errors.Is(err, indexer.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get nft: %w", err)
	}

	if !govalidator.IsURL(nft.Image) {
		return nil, fmt.Errorf("%w: nft %s has invalid image url", ErrNotFound, nft.ID)
	}

	src, err := r.download(ctx, nft.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	data, err = Draw(bytes.NewReader(src), p.Frame, size)
	if err != nil {
		return nil, fmt.Errorf("failed to draw avatar: %w", err)
	}

	if err := r.fs.Write(ctx, bytes.NewReader(data), int64(len(data)), key, contentType); err != nil {
		log.WithError(err).WithField("key", key).Error("failed to cache avatar")
	}

	return data, nil
}

func (r *renderer) read(ctx context.Context, key string) ([]byte, error) {
	rc, err := r.fs.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close() // nolint

	return ioutil.ReadAll(rc)
}

func (r *renderer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	data, err := ioutil.ReadAll(io.LimitReader(resp.Body, r.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	if int64(len(data)) > r.maxFileSize {
		return nil, fmt.Errorf("image is larger than %d bytes", r.maxFileSize)
	}

	return data, nil
}
