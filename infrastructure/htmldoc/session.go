package htmldoc

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"declarative_elements/domain/interfaces"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Session loads pages into static documents. http(s) pages are fetched with
// resty, file URLs and plain paths are read from disk.
type Session struct {
	client *resty.Client
	logger *logrus.Logger
	doc    *Document
	url    string
}

// NewSession - creates new static document session
func NewSession(logger *logrus.Logger, timeout time.Duration) *Session {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "declarative-elements/htmldoc")

	return &Session{
		client: client,
		logger: logger,
	}
}

// Load - replaces the current document
func (s *Session) Load(doc *Document, pageURL string) {
	s.doc = doc
	s.url = pageURL
}

// Navigate - loads the document at rawURL
func (s *Session) Navigate(ctx context.Context, rawURL string) error {
	s.logger.Infof("Loading document: %s", rawURL)

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse url: %w", err)
	}

	var body []byte
	switch u.Scheme {
	case "http", "https":
		resp, err := s.client.R().SetContext(ctx).Get(rawURL)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", rawURL, err)
		}
		if resp.IsError() {
			return fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode())
		}
		body = resp.Body()
	case "file":
		body, err = os.ReadFile(u.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", u.Path, err)
		}
	case "":
		body, err = os.ReadFile(rawURL)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rawURL, err)
		}
	default:
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	doc, err := Parse(bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.Load(doc, rawURL)
	return nil
}

// Root returns the current document, nil before the first load
func (s *Session) Root() interfaces.Reference {
	if s.doc == nil {
		return nil
	}
	return s.doc
}

// CurrentURL returns the url of the current document
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	return s.url, nil
}

// Title returns the title of the current document
func (s *Session) Title(ctx context.Context) (string, error) {
	if s.doc == nil {
		return "", nil
	}
	return s.doc.Title(), nil
}

// Close releases nothing: a static session holds no browser
func (s *Session) Close() error {
	return nil
}
