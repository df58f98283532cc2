package smocks

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/stretchr/testify/mock"
)

type LinkMock struct {
	mock.Mock
}

func (m *LinkMock) Create(ctx context.Context, rawURL string) (*models.ShortLink, bool, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.ShortLink), args.Bool(1), args.Error(2) //nolint:wrapcheck,errcheck
}

func (m *LinkMock) Resolve(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkMock) Stats(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkMock) ListAll(ctx context.Context) ([]models.ShortLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}
