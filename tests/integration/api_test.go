package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"github.com/shorturl786/Shorturl31/internal/config"
	"github.com/shorturl786/Shorturl31/internal/database/sqlite"
	"github.com/shorturl786/Shorturl31/internal/service"

	api "github.com/shorturl786/Shorturl31/internal/api/http"
)

var shortURLPattern = regexp.MustCompile(`/([A-Za-z0-9]{6})<`)

type APITestSuite struct {
	suite.Suite
	db     *sqlx.DB
	urlSvc *service.URLService
	server *httptest.Server
	e      *httpexpect.Expect
}

func (suite *APITestSuite) SetupTest() {
	var err error
	suite.db, err = sqlite.New(":memory:")
	if err != nil {
		suite.T().Fatalf("Failed to open database: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := suite.db.Close(); err != nil {
			suite.T().Fatalf("Failed to close database: %v", err)
		}
	})

	if err := sqlite.RunMigrations(suite.db); err != nil {
		suite.T().Fatalf("Failed to run migrations: %v", err)
	}

	urlRepo := sqlite.NewURLRepository(suite.db)
	suite.urlSvc = service.NewURLService(urlRepo, config.Shortener{
		CodeLength:  6,
		Alphabet:    "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
		MaxAttempts: 20,
	})

	logger := httplog.NewLogger("", httplog.Options{Writer: io.Discard})
	suite.server = httptest.NewServer(api.NewRouter(logger, suite.urlSvc))
	suite.T().Cleanup(suite.server.Close)

	suite.e = httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  suite.server.URL,
		Reporter: httpexpect.NewAssertReporter(suite.T()),
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})
}

// shorten submits the form and extracts the generated code from the result page.
func (suite *APITestSuite) shorten(raw string) string {
	body := suite.e.POST("/").
		WithFormField("url", raw).
		Expect().
		Status(http.StatusOK).
		Body().Raw()

	match := shortURLPattern.FindStringSubmatch(body)
	if match == nil {
		suite.T().Fatalf("Result page contains no short URL: %q", body)
	}

	return match[1]
}

func (suite *APITestSuite) statsCount() int64 {
	count, err := suite.urlSvc.TotalURLs(context.Background())
	if err != nil {
		suite.T().Fatalf("Failed to count urls: %v", err)
	}

	return count
}

func (suite *APITestSuite) TestShortenForm() {
	code := suite.shorten("example.com")

	suite.Len(code, 6)
	suite.Equal(int64(1), suite.statsCount())

	url, err := suite.urlSvc.URLStats(context.Background(), code)

	suite.NoError(err)
	suite.Equal("https://example.com", url.OriginalURL)
	suite.Zero(url.Clicks)
}

func (suite *APITestSuite) TestShortenFormRejectsInvalidURL() {
	suite.e.POST("/").
		WithFormField("url", "ftp://bad").
		Expect().
		Status(http.StatusFound).
		Header("Location").IsEqual("/url-error.php")

	suite.e.GET("/url-error.php").
		Expect().
		Status(http.StatusBadRequest)

	suite.Zero(suite.statsCount())
}

func (suite *APITestSuite) TestShortenFormDedup() {
	first := suite.shorten("example.com")
	second := suite.shorten("https://example.com")

	suite.Equal(first, second)
	suite.Equal(int64(1), suite.statsCount())
}

func (suite *APITestSuite) TestRedirectCountsClicks() {
	code := suite.shorten("example.com")

	suite.e.GET(fmt.Sprintf("/%s", code)).
		Expect().
		Status(http.StatusFound).
		Header("Location").IsEqual("https://example.com")

	url, err := suite.urlSvc.URLStats(context.Background(), code)

	suite.NoError(err)
	suite.Equal(int64(1), url.Clicks)

	suite.e.GET(fmt.Sprintf("/%s", code)).
		Expect().
		Status(http.StatusFound)

	url, err = suite.urlSvc.URLStats(context.Background(), code)

	suite.NoError(err)
	suite.Equal(int64(2), url.Clicks)
}

func (suite *APITestSuite) TestUnknownCode() {
	suite.shorten("example.com")

	suite.e.GET("/zzzzzz").
		Expect().
		Status(http.StatusNotFound).
		Body().Contains("Link Not Found")

	suite.Equal(int64(1), suite.statsCount())
}

func (suite *APITestSuite) TestStatsPage() {
	suite.shorten("example.com")
	suite.shorten("example.org")

	suite.e.GET("/stats").
		Expect().
		Status(http.StatusOK).
		Body().Contains("2")
}

func (suite *APITestSuite) TestAPIRoundTrip() {
	resp := suite.e.POST("/api/shorten").
		WithJSON(map[string]any{"url": "example.com"}).
		Expect().
		Status(http.StatusCreated).
		JSON().Object()

	resp.HasValue("status", "success")

	code := resp.Value("data").Object().Value("code").String().Raw()
	suite.Len(code, 6)

	suite.e.GET(fmt.Sprintf("/%s", code)).
		Expect().
		Status(http.StatusFound).
		Header("Location").IsEqual("https://example.com")

	suite.e.GET(fmt.Sprintf("/api/urls/%s/stats", code)).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		HasValue("clicks", 1)

	suite.e.GET("/api/stats").
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		Value("data").Object().
		HasValue("total_urls", 1)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
