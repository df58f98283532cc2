package services

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
)

// ShortLinker интерфейс реестра коротких ссылок.
type ShortLinker interface {
	// Create возвращает запись для rawURL: существующую, если URL уже сокращали,
	// либо новую со свежим кодом. Булево значение - признак новой записи.
	Create(ctx context.Context, rawURL string) (*models.ShortLink, bool, error)
	// Resolve находит запись по короткому коду и увеличивает счетчик переходов.
	Resolve(ctx context.Context, shortCode string) (*models.ShortLink, error)
	// Stats возвращает запись по короткому коду, не изменяя счетчик.
	Stats(ctx context.Context, shortCode string) (*models.ShortLink, error)
	// ListAll возвращает все записи реестра.
	ListAll(ctx context.Context) ([]models.ShortLink, error)
}
