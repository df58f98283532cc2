package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/db/memory"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/sirupsen/logrus"
)

// LinkRepo представляет собой репозиторий для работы с короткими ссылками в памяти.
// Записи хранятся по ключу короткого кода; уникальность исходного URL обеспечивается
// мьютексом репозитория, который делает проверку дубликата и вставку одной
// критической секцией.
type LinkRepo struct {
	s      *db.MemoryStorage
	logger *logrus.Entry
	mu     sync.Mutex
}

// NewLinkRepo создает новый экземпляр репозитория коротких ссылок.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//   - logger: логгер приложения
//
// Возвращает:
//   - *LinkRepo: инициализированный репозиторий
func NewLinkRepo(store *db.MemoryStorage, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		s:      store,
		logger: logger.WithField("module", "repository/memstore/link"),
	}
}

// Create создает новую запись короткой ссылки.
// Если запись с таким URL уже существует - возвращает её (вторым значением false).
// Если короткий код занят другой записью - возвращает repositories.ErrDuplicateKey,
// вызывающая сторона должна сгенерировать новый код и повторить вставку.
//
// Параметры:
//   - ctx: контекст выполнения
//   - link: данные ссылки для создания
//
// Возвращает:
//   - *models.ShortLink: сохраненная запись
//   - bool: флаг создания новой записи
//   - error: ошибка создания (преобразованная через convertErrorType)
func (r *LinkRepo) Create(ctx context.Context, link *models.ShortLink) (*models.ShortLink, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, getErr := r.getByURL(ctx, link.URL)
	if getErr == nil {
		return existing, false, nil
	}
	if !errors.Is(getErr, repositories.ErrNotFound) {
		return nil, false, getErr
	}

	link.CreatedAt = time.Now().UTC()
	if err := memory.Set[models.ShortLink](ctx, link.ShortCode, link, r.s.MStorage); err != nil {
		return nil, false, fmt.Errorf(
			"failed to create record: %w",
			convertErrorType(err),
		)
	}
	return link, true, nil
}

// GetByShortCode получает запись по короткому коду.
//
// Параметры:
//   - ctx: контекст выполнения
//   - shortCode: короткий код ссылки
//
// Возвращает:
//   - *models.ShortLink: найденная запись
//   - error: ошибка поиска (преобразованная через convertErrorType)
func (r *LinkRepo) GetByShortCode(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	link, err := memory.Get[models.ShortLink](ctx, shortCode, r.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get record by short code %s: %w",
			shortCode, convertErrorType(err),
		)
	}
	return link, nil
}

// GetByURL получает запись по оригинальному URL.
// Поиск линейный по всем записям; сравнение - строгое строковое равенство.
//
// Параметры:
//   - ctx: контекст выполнения
//   - rawURL: оригинальный URL
//
// Возвращает:
//   - *models.ShortLink: найденная запись
//   - error: ошибка поиска (преобразованная через convertErrorType)
func (r *LinkRepo) GetByURL(ctx context.Context, rawURL string) (*models.ShortLink, error) {
	return r.getByURL(ctx, rawURL)
}

// GetAll получает все сохраненные записи.
//
// Параметры:
//   - ctx: контекст выполнения
//
// Возвращает:
//   - []models.ShortLink: все записи
//   - error: ошибка получения (преобразованная через convertErrorType)
func (r *LinkRepo) GetAll(ctx context.Context) ([]models.ShortLink, error) {
	links, err := memory.GetAll[models.ShortLink](ctx, r.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all records: %w",
			convertErrorType(err),
		)
	}
	return links, nil
}

// IncrementClicks атомарно увеличивает счетчик переходов записи на единицу.
// Чтение, инкремент и запись выполняются под одной блокировкой хранилища,
// потерянные обновления при конкурентных вызовах исключены.
//
// Параметры:
//   - ctx: контекст выполнения
//   - shortCode: короткий код ссылки
//
// Возвращает:
//   - *models.ShortLink: запись с обновленным счетчиком
//   - error: ошибка обновления (преобразованная через convertErrorType)
func (r *LinkRepo) IncrementClicks(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	link, err := memory.Update[models.ShortLink](ctx, shortCode, r.s.MStorage, func(l *models.ShortLink) {
		l.ClickCount++
	})
	if err != nil {
		return nil, fmt.Errorf(
			"failed to increment clicks for short code %s: %w",
			shortCode, convertErrorType(err),
		)
	}
	return link, nil
}

func (r *LinkRepo) getByURL(ctx context.Context, rawURL string) (*models.ShortLink, error) {
	data, err := memory.GetAll[models.ShortLink](ctx, r.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get record by url %s: %w",
			rawURL, convertErrorType(err),
		)
	}

	for _, val := range data {
		if val.URL == rawURL {
			return &val, nil
		}
	}
	return nil, repositories.ErrNotFound
}
