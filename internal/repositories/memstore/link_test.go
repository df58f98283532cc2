package memstore

import (
	"sync"
	"testing"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestRepo() *LinkRepo {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewLinkRepo(db.NewMemStorage(), logger)
}

func newTestLink(rawURL, shortCode string) *models.ShortLink {
	return &models.ShortLink{
		ID:        uuid.NewString(),
		URL:       rawURL,
		ShortCode: shortCode,
	}
}

func TestLinkRepo_Create(t *testing.T) {
	repo := newTestRepo()

	link, isNew, err := repo.Create(t.Context(), newTestLink("https://example.com/a", "abc123"))
	require.NoError(t, err)
	require.True(t, isNew)
	require.Equal(t, uint64(0), link.ClickCount)
	require.False(t, link.CreatedAt.IsZero())

	t.Run("same url returns existing record", func(t *testing.T) {
		existing, isNew2, err2 := repo.Create(t.Context(), newTestLink("https://example.com/a", "xyz789"))
		require.NoError(t, err2)
		require.False(t, isNew2)
		require.Equal(t, link.ShortCode, existing.ShortCode)
		require.Equal(t, link.ID, existing.ID)
		require.Equal(t, 1, repo.s.Len())
	})

	t.Run("short code collision", func(t *testing.T) {
		_, _, err3 := repo.Create(t.Context(), newTestLink("https://example.com/b", "abc123"))
		require.ErrorIs(t, err3, repositories.ErrDuplicateKey)
	})
}

// Конкурентные Create для одного URL не должны создавать расходящиеся записи.
func TestLinkRepo_Create_Concurrent(t *testing.T) {
	repo := newTestRepo()
	const workers = 50

	codes := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			link := newTestLink("https://example.com/same", generateCodeForTest(i))
			created, _, err := repo.Create(t.Context(), link)
			if err != nil {
				errs[i] = err
				return
			}
			codes[i] = created.ShortCode
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, 1, repo.s.Len())
	for _, code := range codes {
		require.Equal(t, codes[0], code)
	}
}

func TestLinkRepo_GetByShortCode(t *testing.T) {
	repo := newTestRepo()
	_, _, err := repo.Create(t.Context(), newTestLink("https://example.com/a", "abc123"))
	require.NoError(t, err)

	link, getErr := repo.GetByShortCode(t.Context(), "abc123")
	require.NoError(t, getErr)
	require.Equal(t, "https://example.com/a", link.URL)

	_, missErr := repo.GetByShortCode(t.Context(), "ZZZZZZ")
	require.ErrorIs(t, missErr, repositories.ErrNotFound)
}

func TestLinkRepo_IncrementClicks(t *testing.T) {
	repo := newTestRepo()
	_, _, err := repo.Create(t.Context(), newTestLink("https://example.com/a", "abc123"))
	require.NoError(t, err)

	link, incErr := repo.IncrementClicks(t.Context(), "abc123")
	require.NoError(t, incErr)
	require.Equal(t, uint64(1), link.ClickCount)

	_, missErr := repo.IncrementClicks(t.Context(), "ZZZZZZ")
	require.ErrorIs(t, missErr, repositories.ErrNotFound)
}

// Регрессионный тест на потерянные обновления счетчика.
func TestLinkRepo_IncrementClicks_Concurrent(t *testing.T) {
	repo := newTestRepo()
	_, _, err := repo.Create(t.Context(), newTestLink("https://example.com/a", "abc123"))
	require.NoError(t, err)

	const clicks = 200

	errs := make([]error, clicks)
	var wg sync.WaitGroup
	wg.Add(clicks)
	for i := range clicks {
		go func() {
			defer wg.Done()
			_, errs[i] = repo.IncrementClicks(t.Context(), "abc123")
		}()
	}
	wg.Wait()

	for _, incErr := range errs {
		require.NoError(t, incErr)
	}

	link, getErr := repo.GetByShortCode(t.Context(), "abc123")
	require.NoError(t, getErr)
	require.Equal(t, uint64(clicks), link.ClickCount)
}

func TestLinkRepo_GetAll(t *testing.T) {
	repo := newTestRepo()

	seed := map[string]string{
		"aaa111": "https://example.com/a",
		"bbb222": "https://example.com/b",
		"ccc333": "https://example.com/c",
	}
	for code, rawURL := range seed {
		_, _, err := repo.Create(t.Context(), newTestLink(rawURL, code))
		require.NoError(t, err)
	}

	links, err := repo.GetAll(t.Context())
	require.NoError(t, err)
	require.Len(t, links, len(seed))

	for _, link := range links {
		require.Equal(t, seed[link.ShortCode], link.URL)
	}
}

// generateCodeForTest возвращает уникальный в рамках теста шестисимвольный код.
func generateCodeForTest(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, models.ShortCodeLength)
	for pos := range b {
		b[pos] = alphabet[i%len(alphabet)]
		i /= len(alphabet)
	}
	return string(b)
}
