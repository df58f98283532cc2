package controllers

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
)

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// ShortLinkStore операции реестра коротких ссылок, используемые контроллерами.
type ShortLinkStore interface {
	// Create создает запись models.ShortLink. Возвращает модель, булево значение
	// (новая запись или нет) и ошибку.
	Create(ctx context.Context, rawURL string) (*models.ShortLink, bool, error)
	// Resolve находит запись по короткому коду и увеличивает счетчик переходов.
	Resolve(ctx context.Context, shortCode string) (*models.ShortLink, error)
	// Stats возвращает запись по короткому коду, не изменяя счетчик.
	Stats(ctx context.Context, shortCode string) (*models.ShortLink, error)
	// ListAll возвращает все записи реестра.
	ListAll(ctx context.Context) ([]models.ShortLink, error)
}
