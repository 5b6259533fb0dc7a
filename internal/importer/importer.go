// Package importer fetches remote text files for import as documents.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidURL = errors.New("invalid URL")
	ErrScheme     = errors.New("only http/https URLs are allowed")
	ErrNotText    = errors.New("only TXT/text content can be imported")
	ErrTooLarge   = errors.New("file too large")
	ErrUpstream   = errors.New("failed to fetch URL")
)

// Result is a fetched document ready for storage.
type Result struct {
	Name    string
	Content string
}

type Importer struct {
	client   *http.Client
	maxBytes int64
}

// New builds an Importer. timeout bounds the whole fetch; maxBytes caps
// the response body.
func New(timeout time.Duration, maxBytes int64) *Importer {
	return &Importer{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		maxBytes: maxBytes,
	}
}

// Fetch downloads the target URL, enforcing scheme, content-type and
// size constraints. The content must be text/plain by header or carry a
// .txt path extension.
func (i *Importer) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ErrScheme
	}
	if parsed.Host == "" {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, ErrInvalidURL
	}
	req.Header.Set("Accept", "text/plain, text/*;q=0.9, */*;q=0.1")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream responded %d", ErrUpstream, resp.StatusCode)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	isTextByHeader := strings.HasPrefix(contentType, "text/")
	isTxtByExt := strings.HasSuffix(strings.ToLower(parsed.Path), ".txt")
	if !isTextByHeader && !isTxtByExt {
		return nil, ErrNotText
	}

	if header := resp.Header.Get("Content-Length"); header != "" {
		if size, err := strconv.ParseInt(header, 10, 64); err == nil && size > i.maxBytes {
			return nil, ErrTooLarge
		}
	}

	// Read one byte past the cap to detect oversize bodies that did not
	// declare a Content-Length.
	body, err := io.ReadAll(io.LimitReader(resp.Body, i.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if int64(len(body)) > i.maxBytes {
		return nil, ErrTooLarge
	}

	return &Result{
		Name:    nameFromPath(parsed.Path),
		Content: string(body),
	}, nil
}

func nameFromPath(p string) string {
	last := path.Base(p)
	if last == "." || last == "/" || last == "" {
		return "imported.txt"
	}
	if unescaped, err := url.PathUnescape(last); err == nil {
		return unescaped
	}
	return last
}
