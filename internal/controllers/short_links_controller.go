package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"

	"github.com/gin-gonic/gin"
)

// hostnameRegex в соответствии с `RFC 1123` за исключением - исключает корневые доменные имена (без зоны).
var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9](-?[a-zA-Z0-9])*\.)+([a-zA-Z0-9](-?[a-zA-Z0-9])*)$`)

type ShortLinkController struct {
	linkService ShortLinkStore
	baseURL     *url.URL
}

func NewShortLinkController(linkService ShortLinkStore, baseURL *url.URL) *ShortLinkController {
	return &ShortLinkController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

// shortenRequest тело json запроса на сокращение ссылки.
type shortenRequest struct {
	URL string `json:"url" binding:"required"`
}

// shortenResponse ответ на создание короткой ссылки.
type shortenResponse struct {
	LongURL   string `json:"longURL"`
	ShortCode string `json:"shortCode"`
	ShortURL  string `json:"shortURL"`
}

// linkInfoResponse полное состояние записи для листинга и статистики.
type linkInfoResponse struct {
	ID         string    `json:"id"`
	LongURL    string    `json:"longURL"`
	ShortCode  string    `json:"shortCode"`
	ShortURL   string    `json:"shortURL"`
	ClickCount uint64    `json:"clickCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateShortLink принимает json запрос `{"url": "..."}` либо plain запрос со ссылкой в теле.
// Повторное сокращение уже известного URL возвращает существующий код; статус в обоих
// случаях 201.
func (s *ShortLinkController) CreateShortLink(ctx *gin.Context) {
	rawURL, readErr := s.readRawURL(ctx)
	if readErr != nil {
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	parsedURL, parseErr := validateURL(rawURL)
	if parseErr != nil {
		ctx.String(http.StatusUnprocessableEntity, parseErr.Error())
		return
	}

	link, _, createErr := s.linkService.Create(ctx, parsedURL.String())
	if createErr != nil {
		_ = ctx.Error(fmt.Errorf("create short link: %w", createErr))
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	ctx.JSON(http.StatusCreated, shortenResponse{
		LongURL:   link.URL,
		ShortCode: link.ShortCode,
		ShortURL:  s.getShortURL(ctx.Request, link.ShortCode),
	})
}

// Redirect ищет запись по короткому коду и перенаправляет на оригинальный URL.
// Счетчик переходов увеличивается до записи ответа.
func (s *ShortLinkController) Redirect(ctx *gin.Context) {
	shortCode := ctx.Param("shortCode")

	if len(shortCode) != models.ShortCodeLength {
		ctx.String(http.StatusNotFound, ErrRecordNotFound.Error())
		return
	}

	link, err := s.linkService.Resolve(ctx, shortCode)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ctx.String(http.StatusNotFound, err.Error())
			return
		}

		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, link.URL)
}

// ListAll возвращает все записи реестра. Без пагинации и фильтров.
func (s *ShortLinkController) ListAll(ctx *gin.Context) {
	links, err := s.linkService.ListAll(ctx)
	if err != nil {
		_ = ctx.Error(fmt.Errorf("list all short links: %w", err))
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	response := make([]linkInfoResponse, 0, len(links))
	for _, link := range links {
		response = append(response, s.linkInfo(ctx.Request, link))
	}
	ctx.JSON(http.StatusOK, response)
}

// Stats возвращает полное состояние записи, включая счетчик переходов.
func (s *ShortLinkController) Stats(ctx *gin.Context) {
	shortCode := ctx.Param("shortCode")

	link, err := s.linkService.Stats(ctx, shortCode)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ctx.String(http.StatusNotFound, err.Error())
			return
		}

		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, s.linkInfo(ctx.Request, *link))
}

// readRawURL достает ссылку из тела запроса (json или plain).
func (s *ShortLinkController) readRawURL(ctx *gin.Context) (string, error) {
	if isJSONRequest(ctx) {
		var req shortenRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			// невалидный json отдадим дальше как невалидный URL
			return "", nil
		}
		return req.URL, nil
	}

	body, readErr := io.ReadAll(ctx.Request.Body)
	if readErr != nil {
		return "", fmt.Errorf("read request body: %w", readErr)
	}
	return string(body), nil
}

func (s *ShortLinkController) linkInfo(r *http.Request, link models.ShortLink) linkInfoResponse {
	return linkInfoResponse{
		ID:         link.ID,
		LongURL:    link.URL,
		ShortCode:  link.ShortCode,
		ShortURL:   s.getShortURL(r, link.ShortCode),
		ClickCount: link.ClickCount,
		CreatedAt:  link.CreatedAt,
	}
}

// getShortURL вспомогательный метод который создает короткую ссылку.
func (s *ShortLinkController) getShortURL(r *http.Request, shortCode string) string {
	var scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if s.baseURL == nil {
		return fmt.Sprintf("%s://%s/%s", scheme, r.Host, shortCode)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, shortCode)
}

// validateURL проверяет, является ли строка корректным URL.
func validateURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)

	if err != nil {
		return nil, errors.New("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New("URL must have http or https scheme")
	}

	if parsedURL.Host == "" {
		return nil, errors.New("URL must have a host")
	}

	if parsedURL.Hostname() != "localhost" && !hostnameRegex.MatchString(parsedURL.Hostname()) {
		return nil, errors.New("invalid hostname")
	}

	return parsedURL, nil
}
