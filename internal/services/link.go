package services

import (
	"context"
	"math/rand/v2"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// createAttemptsMax предел попыток вставки при коллизиях короткого кода.
// При 62^6 комбинаций до предела дело доходит только если хранилище почти заполнено.
const createAttemptsMax = 10

type LinkRepository interface {
	// Create создает запись. Если URL уже есть в хранилище - возвращает существующую
	// запись и false. Коллизия короткого кода возвращается как repositories.ErrDuplicateKey.
	Create(ctx context.Context, link *models.ShortLink) (*models.ShortLink, bool, error)
	// GetByShortCode находит запись по короткому коду.
	GetByShortCode(ctx context.Context, shortCode string) (*models.ShortLink, error)
	// GetByURL находит запись по оригинальному URL.
	GetByURL(ctx context.Context, rawURL string) (*models.ShortLink, error)
	// GetAll возвращает все записи.
	GetAll(ctx context.Context) ([]models.ShortLink, error)
	// IncrementClicks атомарно увеличивает счетчик переходов на единицу.
	IncrementClicks(ctx context.Context, shortCode string) (*models.ShortLink, error)
}

// LinkService реестр коротких ссылок поверх репозитория.
type LinkService struct {
	linkRepo LinkRepository
	rng      *rand.Rand
}

func NewLinkService(linkRepo LinkRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo}
}

// NewLinkServiceWithRand создает сервис с детерминированным источником случайности.
// Используется в тестах; rng не рассчитан на конкурентные вызовы Create.
func NewLinkServiceWithRand(linkRepo LinkRepository, rng *rand.Rand) *LinkService {
	return &LinkService{linkRepo: linkRepo, rng: rng}
}

// Create возвращает запись для rawURL. Повторное сокращение того же URL
// возвращает уже существующую запись - проверка и вставка атомарны на уровне
// репозитория, поэтому конкурентные вызовы для одного URL не создают дублей.
// URL сравнивается строгим строковым равенством, без нормализации.
func (s *LinkService) Create(ctx context.Context, rawURL string) (*models.ShortLink, bool, error) {
	existing, existingErr := s.linkRepo.GetByURL(ctx, rawURL)
	if existingErr == nil {
		return existing, false, nil
	}
	if !errors.Is(existingErr, repositories.ErrNotFound) {
		return nil, false, ErrUnknown
	}

	for range createAttemptsMax {
		link := models.ShortLink{
			ID:        uuid.NewString(),
			URL:       rawURL,
			ShortCode: GenerateShortCode(s.rng, models.ShortCodeLength, s.shortCodeExists(ctx)),
		}

		created, isNew, createErr := s.linkRepo.Create(ctx, &link)
		if createErr != nil {
			// Код успели занять между проверкой и вставкой - генерируем заново.
			if errors.Is(createErr, repositories.ErrDuplicateKey) {
				continue
			}
			return nil, false, ErrUnknown
		}
		return created, isNew, nil
	}
	return nil, false, errors.Wrap(ErrExhaustedKeyspace, "short code generation attempts limit reached")
}

// Resolve находит запись по короткому коду и увеличивает счетчик переходов.
// Инкремент атомарен и выполняется до возврата ответа.
func (s *LinkService) Resolve(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	link, err := s.linkRepo.IncrementClicks(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "short code %s not found", shortCode)
		}
		return nil, ErrUnknown
	}
	return link, nil
}

// Stats возвращает текущее состояние записи, счетчик не изменяется.
func (s *LinkService) Stats(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	link, err := s.linkRepo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "short code %s not found", shortCode)
		}
		return nil, ErrUnknown
	}
	return link, nil
}

// ListAll возвращает все записи реестра. Порядок не определен.
func (s *LinkService) ListAll(ctx context.Context) ([]models.ShortLink, error) {
	links, err := s.linkRepo.GetAll(ctx)
	if err != nil {
		return nil, ErrUnknown
	}
	return links, nil
}

// shortCodeExists возвращает предикат занятости кода для генератора.
// Предикат сужает выбор, но решающей остается вставка: уникальность кода
// гарантирует ошибка дубликата от хранилища.
func (s *LinkService) shortCodeExists(ctx context.Context) func(string) bool {
	return func(code string) bool {
		_, err := s.linkRepo.GetByShortCode(ctx, code)
		return err == nil
	}
}
