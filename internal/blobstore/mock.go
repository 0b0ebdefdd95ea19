package blobstore

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"time"

	"github.com/miltrack/miltrack/internal/logging"
)

// MockStore is the in-memory stand-in for a real blob store, used for local
// development and tests. State is a path→bytes map with simulated latency
// and a seeded profile image.
type MockStore struct {
	mu    sync.Mutex
	files map[string][]byte

	latencyUnit time.Duration
	logger      logging.Logger
}

var _ Store = (*MockStore)(nil)

// NewMockStore constructs a MockStore with the development seed data.
// latencyUnit scales the simulated network delay (100ms gives realistic
// development delays; 0 disables sleeping).
func NewMockStore(latencyUnit time.Duration, logger logging.Logger) *MockStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &MockStore{
		files:       make(map[string][]byte),
		latencyUnit: latencyUnit,
		logger:      logger,
	}
	s.files[ProfileImagePath("mock-user")] = seedImage()
	return s
}

// seedImage renders a small solid placeholder so development flows have a
// downloadable profile image from the start.
func seedImage() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 0x2f, G: 0x4f, B: 0x2f, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func (s *MockStore) simulate(ctx context.Context, units int) error {
	d := time.Duration(units) * s.latencyUnit
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MockStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.logger.Debug(ctx, "mock upload", "path", path, "contentType", contentType, "bytes", len(data))

	if err := s.simulate(ctx, 15); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.files[path] = append([]byte(nil), data...)
	s.mu.Unlock()
	return path, nil
}

func (s *MockStore) UploadImage(ctx context.Context, path string, data []byte) (string, error) {
	s.logger.Debug(ctx, "mock upload image", "path", path, "bytes", len(data))

	if err := s.simulate(ctx, 20); err != nil {
		return "", err
	}
	if err := validateImage(data); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.files[path] = append([]byte(nil), data...)
	s.mu.Unlock()
	return path, nil
}

func (s *MockStore) Download(ctx context.Context, path string) ([]byte, error) {
	s.logger.Debug(ctx, "mock download", "path", path)

	if err := s.simulate(ctx, 10); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, ErrFileNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MockStore) Delete(ctx context.Context, path string) error {
	s.logger.Debug(ctx, "mock delete", "path", path)

	if err := s.simulate(ctx, 5); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[path]; !ok {
		return ErrFileNotFound
	}
	delete(s.files, path)
	return nil
}

func (s *MockStore) URL(ctx context.Context, path string) (string, error) {
	s.logger.Debug(ctx, "mock url", "path", path)

	if err := s.simulate(ctx, 3); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[path]; !ok {
		return "", ErrFileNotFound
	}
	return "https://mock-storage.example.com/" + path, nil
}
