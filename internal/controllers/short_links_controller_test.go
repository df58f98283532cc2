package controllers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"
	"github.com/fsdevblog/shortlinks/internal/services/smocks"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ShortLinkControllerSuite struct {
	suite.Suite
	linkServMock *smocks.LinkMock
	router       *gin.Engine
	config       config.Config
}

func (s *ShortLinkControllerSuite) SetupTest() {
	s.linkServMock = new(smocks.LinkMock)
	s.config = config.Config{
		ServerAddress: ":80",
		BaseURL:       &url.URL{Scheme: "http", Host: "test.com:8080"},
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s.router = SetupRouter(RouterParams{
		LinkService: s.linkServMock,
		AppConf:     s.config,
		Logger:      logger,
	})
}

func (s *ShortLinkControllerSuite) TestShortLinkController_CreateShortLink() {
	validURL := "https://test.com/valid"
	invalidURL := "https://test .com/valid"
	shortCode := "abc123"

	s.linkServMock.On("Create", mock.Anything, validURL).
		Return(&models.ShortLink{ShortCode: shortCode, URL: validURL}, true, nil)

	tests := []struct {
		name       string
		rawURL     string
		wantStatus int
	}{
		{name: "valid", rawURL: validURL, wantStatus: http.StatusCreated},
		{name: "invalid", rawURL: invalidURL, wantStatus: http.StatusUnprocessableEntity},
	}

	jsonFn := func(to string) io.Reader {
		return strings.NewReader(fmt.Sprintf(`{"url": "%s"}`, to))
	}
	bodyFn := func(to string) io.Reader {
		return strings.NewReader(to)
	}
	requests := []struct {
		contentType string
		bodyFn      func(to string) io.Reader
	}{
		{contentType: "application/json", bodyFn: jsonFn},
		{contentType: "text/plain", bodyFn: bodyFn},
	}
	for _, r := range requests {
		for _, tt := range tests {
			s.Run(tt.name, func() {
				res := s.makeRequest(requestFields{
					Method:      http.MethodPost,
					URL:         "/shorten",
					Body:        r.bodyFn(tt.rawURL),
					ContentType: r.contentType,
				})

				defer res.Body.Close()

				s.Equal(tt.wantStatus, res.StatusCode)

				if tt.wantStatus == http.StatusCreated {
					body, bErr := io.ReadAll(res.Body)
					if bErr != nil {
						s.T().Fatalf("failed to read body: %v", bErr)
					}
					want := fmt.Sprintf(
						`{"longURL":"%s","shortCode":"%s","shortURL":"%s/%s"}`,
						validURL, shortCode, s.config.BaseURL.String(), shortCode,
					)
					s.JSONEq(want, string(body))
				}
			})
		}
	}
}

// Повторное сокращение уже известного URL тоже отвечает 201.
func (s *ShortLinkControllerSuite) TestShortLinkController_CreateShortLink_Duplicate() {
	validURL := "https://test.com/valid"

	s.linkServMock.On("Create", mock.Anything, validURL).
		Return(&models.ShortLink{ShortCode: "abc123", URL: validURL}, false, nil)

	res := s.makeRequest(requestFields{
		Method:      http.MethodPost,
		URL:         "/shorten",
		Body:        strings.NewReader(validURL),
		ContentType: "text/plain",
	})
	defer res.Body.Close()

	s.Equal(http.StatusCreated, res.StatusCode)
}

func (s *ShortLinkControllerSuite) TestShortLinkController_Redirect() {
	validShortCode := "abc123"
	notExistShortCode := "abc124"
	inValidShortCode := "abc"

	redirectTo := "https://test.com/test/123"

	s.linkServMock.On("Resolve", mock.Anything, validShortCode).
		Return(&models.ShortLink{ShortCode: validShortCode, URL: redirectTo, ClickCount: 1}, nil)

	s.linkServMock.On("Resolve", mock.Anything, notExistShortCode).
		Return(nil, services.ErrRecordNotFound)

	tests := []struct {
		name       string
		requestURI string
		wantStatus int
	}{
		{name: "valid", requestURI: validShortCode, wantStatus: http.StatusTemporaryRedirect},
		{name: "invalid", requestURI: inValidShortCode, wantStatus: http.StatusNotFound},
		{name: "notExistShortCode", requestURI: notExistShortCode, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{
				Method: http.MethodGet,
				URL:    "/" + tt.requestURI,
			})

			defer res.Body.Close()

			body, _ := io.ReadAll(res.Body)
			s.Equal(tt.wantStatus, res.StatusCode, "Answer:", string(body))
			if tt.wantStatus == http.StatusTemporaryRedirect {
				s.Equal(redirectTo, res.Header.Get("Location"))
			} else {
				s.Empty(res.Header.Get("Location"))
			}
		})
	}
	s.linkServMock.AssertNumberOfCalls(s.T(), "Resolve", 2)
}

func (s *ShortLinkControllerSuite) TestShortLinkController_Stats() {
	validShortCode := "abc123"
	notExistShortCode := "abc124"
	rawURL := "https://test.com/test/123"

	s.linkServMock.On("Stats", mock.Anything, validShortCode).
		Return(&models.ShortLink{
			ID:         "0b08a5f9-bf4a-4acc-a482-f4e41b7f3962",
			ShortCode:  validShortCode,
			URL:        rawURL,
			ClickCount: 7,
		}, nil)

	s.linkServMock.On("Stats", mock.Anything, notExistShortCode).
		Return(nil, services.ErrRecordNotFound)

	s.Run("valid", func() {
		res := s.makeRequest(requestFields{
			Method: http.MethodGet,
			URL:    fmt.Sprintf("/urls/%s/stats", validShortCode),
		})
		defer res.Body.Close()

		s.Equal(http.StatusOK, res.StatusCode)

		body, bErr := io.ReadAll(res.Body)
		if bErr != nil {
			s.T().Fatalf("failed to read body: %v", bErr)
		}
		want := fmt.Sprintf(
			`{
				"id": "0b08a5f9-bf4a-4acc-a482-f4e41b7f3962",
				"longURL": "%s",
				"shortCode": "%s",
				"shortURL": "%s/%s",
				"clickCount": 7,
				"createdAt": "0001-01-01T00:00:00Z"
			}`,
			rawURL, validShortCode, s.config.BaseURL.String(), validShortCode,
		)
		s.JSONEq(want, string(body))
	})

	s.Run("not found", func() {
		res := s.makeRequest(requestFields{
			Method: http.MethodGet,
			URL:    fmt.Sprintf("/urls/%s/stats", notExistShortCode),
		})
		defer res.Body.Close()

		s.Equal(http.StatusNotFound, res.StatusCode)
	})
}

func (s *ShortLinkControllerSuite) TestShortLinkController_ListAll() {
	links := []models.ShortLink{
		{ID: "id-1", ShortCode: "aaa111", URL: "https://test.com/a", ClickCount: 1},
		{ID: "id-2", ShortCode: "bbb222", URL: "https://test.com/b", ClickCount: 0},
	}
	s.linkServMock.On("ListAll", mock.Anything).Return(links, nil)

	res := s.makeRequest(requestFields{
		Method: http.MethodGet,
		URL:    "/urls/all",
	})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)

	body, bErr := io.ReadAll(res.Body)
	if bErr != nil {
		s.T().Fatalf("failed to read body: %v", bErr)
	}

	var got []linkInfoResponse
	s.Require().NoError(json.Unmarshal(body, &got))
	s.Require().Len(got, len(links))
	for i, link := range links {
		s.Equal(link.URL, got[i].LongURL)
		s.Equal(link.ShortCode, got[i].ShortCode)
		s.Equal(link.ClickCount, got[i].ClickCount)
		s.Equal(fmt.Sprintf("%s/%s", s.config.BaseURL.String(), link.ShortCode), got[i].ShortURL)
	}
}

func (s *ShortLinkControllerSuite) Test_validateURL() {
	validRaw := "https://test.com"
	validLocalhostRaw := "https://localhost"
	validIPRaw := "https://123.123.123.123/test"

	valid, _ := url.Parse(validRaw)
	validLocalhost, _ := url.Parse(validLocalhostRaw)
	validIP, _ := url.Parse(validIPRaw)

	tests := []struct {
		name    string
		rawURL  string
		want    *url.URL
		wantErr bool
	}{
		{name: "valid url", rawURL: validRaw, want: valid, wantErr: false},
		{name: "wrong scheme", rawURL: "test://test.com", want: nil, wantErr: true},
		{name: "space into", rawURL: "https://tes t.com", want: nil, wantErr: true},
		{name: "wrong chars", rawURL: "https://tes😀t.com", want: nil, wantErr: true},
		{name: "empty zone", rawURL: "https://test.", want: nil, wantErr: true},
		{name: "empty zone", rawURL: "https://test", want: nil, wantErr: true},
		{name: "localhost", rawURL: validLocalhostRaw, want: validLocalhost, wantErr: false},
		{name: "ip address", rawURL: validIPRaw, want: validIP, wantErr: false},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := validateURL(tt.rawURL)
			if (err != nil) != tt.wantErr {
				s.Failf("validateURL() `%s` error = %v, wantErr %v", tt.name, err, tt.wantErr)
				return
			}
			s.Equal(tt.want, got)
		})
	}
}

type requestFields struct {
	Method      string
	URL         string
	Body        io.Reader
	ContentType string
}

// makeRequest вспомогательная функция создающая тестовый http запрос.
func (s *ShortLinkControllerSuite) makeRequest(fields requestFields) *http.Response {
	request := httptest.NewRequest(fields.Method, fields.URL, fields.Body)
	if fields.ContentType != "" {
		request.Header.Set("Content-Type", fields.ContentType)
	}

	recorder := httptest.NewRecorder()

	s.router.ServeHTTP(recorder, request)

	return recorder.Result()
}

func TestShortLinkControllerSuite(t *testing.T) {
	suite.Run(t, new(ShortLinkControllerSuite))
}
