package sql

import (
	"context"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LinkRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewLinkRepo(db *gorm.DB, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/link"),
	}
}

// Create вставляет запись, если ссылки с таким URL ещё нет.
// Конфликт по URL гасится через ON CONFLICT DO NOTHING, после чего возвращается
// существующая запись (вторым значением false). Конфликт по короткому коду
// возвращается как repositories.ErrDuplicateKey.
func (r *LinkRepo) Create(ctx context.Context, link *models.ShortLink) (*models.ShortLink, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoNothing: true,
		}).
		Create(link)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, false, repositories.ErrDuplicateKey
		}
		r.logger.WithError(res.Error).Errorf("failed to create record %+v", *link)
		return nil, false, convertErrorType(res.Error)
	}

	if res.RowsAffected == 0 {
		existing, getErr := r.GetByURL(ctx, link.URL)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	return link, true, nil
}

func (r *LinkRepo) GetByShortCode(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		r.logger.WithError(err).Errorf("failed to get record by short code %s", shortCode)
		return nil, convertErrorType(err)
	}
	return &link, nil
}

func (r *LinkRepo) GetByURL(ctx context.Context, rawURL string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.db.WithContext(ctx).Where("url = ?", rawURL).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		r.logger.WithError(err).Errorf("failed to get record by raw url %s", rawURL)
		return nil, convertErrorType(err)
	}
	return &link, nil
}

func (r *LinkRepo) GetAll(ctx context.Context) ([]models.ShortLink, error) {
	var links []models.ShortLink
	if err := r.db.WithContext(ctx).Find(&links).Error; err != nil {
		r.logger.WithError(err).Error("failed to get all records")
		return nil, convertErrorType(err)
	}
	return links, nil
}

// IncrementClicks увеличивает счетчик переходов на единицу одним UPDATE,
// инкремент выполняется на стороне базы и не теряет конкурентные обновления.
func (r *LinkRepo) IncrementClicks(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ShortLink{}).
		Where("short_code = ?", shortCode).
		UpdateColumn("click_count", gorm.Expr("click_count + 1"))
	if res.Error != nil {
		r.logger.WithError(res.Error).Errorf("failed to increment clicks for short code %s", shortCode)
		return nil, convertErrorType(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repositories.ErrNotFound
	}
	return r.GetByShortCode(ctx, shortCode)
}
