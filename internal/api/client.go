package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/justyntemme/novel-t/pkg/models"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	requestTimeout = 30 * time.Second
	userAgent      = "novel-t/0.1"
)

// Routes are path templates relative to the base URL. {book} and
// {chapter} are replaced with escaped ids.
type Routes struct {
	Books   string `json:"books"`
	TOC     string `json:"toc"`
	Chapter string `json:"chapter"`
}

// DefaultRoutes returns the REST layout of the reader backend
func DefaultRoutes() Routes {
	return Routes{
		Books:   "/books",
		TOC:     "/books/{book}/toc",
		Chapter: "/books/{book}/chapters/{chapter}",
	}
}

// StatusError is returned for HTTP responses with status >= 400
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client is the HTTP client for the reader backend
type Client struct {
	baseURL    string
	routes     Routes
	httpClient *http.Client
	log        *zap.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithRoutes overrides the route templates
func WithRoutes(r Routes) Option {
	return func(c *Client) {
		def := DefaultRoutes()
		if r.Books == "" {
			r.Books = def.Books
		}
		if r.TOC == "" {
			r.TOC = def.TOC
		}
		if r.Chapter == "" {
			r.Chapter = def.Chapter
		}
		c.routes = r
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger attaches a logger
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		routes:  DefaultRoutes(),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL all routes are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request makes a GET request to the API
func (c *Client) request(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("Request failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	c.log.Debug("Request", zap.String("path", path), zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// parseResponse reads and unmarshals the response body
func parseResponse[T any](resp *http.Response) (T, error) {
	var result T
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, err
	}

	if resp.StatusCode >= 400 {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message() == "" {
			return result, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		}
		return result, &StatusError{Code: resp.StatusCode, Message: errResp.Message()}
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("decode response: %w", err)
	}

	return result, nil
}

func (c *Client) path(template, bookID, chapterID string) string {
	r := strings.NewReplacer(
		"{book}", url.PathEscape(bookID),
		"{chapter}", url.PathEscape(chapterID),
	)
	return r.Replace(template)
}

// ListBooks returns the catalog. A 404 or a payload that is not an array
// means no catalog is deployed; a single sample book stands in for it.
func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	resp, err := c.request(ctx, c.routes.Books)
	if err != nil {
		return nil, err
	}
	raw, err := parseResponse[json.RawMessage](resp)
	if err != nil {
		if IsNotFound(err) {
			c.log.Warn("Books endpoint not found, using sample book")
			return []models.Book{models.SampleBook}, nil
		}
		return nil, err
	}

	var entries []models.RawBook
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		c.log.Warn("Unexpected books payload, using sample book", zap.ByteString("payload", truncate(raw, 200)))
		return []models.Book{models.SampleBook}, nil
	}

	books := make([]models.Book, len(entries))
	for i, e := range entries {
		books[i] = e.Book()
	}
	return books, nil
}

// FetchTOC returns the table of contents for a book
func (c *Client) FetchTOC(ctx context.Context, bookID string) ([]models.TocItem, error) {
	resp, err := c.request(ctx, c.path(c.routes.TOC, bookID, ""))
	if err != nil {
		return nil, err
	}
	entries, err := parseResponse[[]models.RawTocItem](resp)
	if err != nil {
		return nil, err
	}
	items := make([]models.TocItem, len(entries))
	for i, e := range entries {
		items[i] = e.TocItem(i)
	}
	return items, nil
}

// FetchChapter returns the markup of one chapter
func (c *Client) FetchChapter(ctx context.Context, bookID, chapterID string) (*models.Chapter, error) {
	resp, err := c.request(ctx, c.path(c.routes.Chapter, bookID, chapterID))
	if err != nil {
		return nil, err
	}
	return parseResponse[*models.Chapter](resp)
}

// FetchCover downloads and decodes a cover image. Relative references are
// resolved against the base URL.
func (c *Client) FetchCover(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, errors.New("book has no cover")
	}
	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	return img, nil
}

func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse cover url: %w", err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	return base.ResolveReference(u).String(), nil
}

// Health checks if the server is available
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.request(ctx, "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
