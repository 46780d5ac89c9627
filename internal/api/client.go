package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/graxinc/errutil"
)

// ErrStatus matches every StatusError. Callers treat it as "not found".
var ErrStatus = errors.New("upstream returned no usable answer")

type StatusError struct {
	Upstream string
	Code     int
	Path     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d for %s", e.Upstream, e.Code, e.Path)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Client issues GET requests against one JSON REST upstream.
type Client struct {
	name string
	base string
	h    *http.Client
	l    *slog.Logger
}

func NewClient(name, base string, h *http.Client, l *slog.Logger) *Client {
	return &Client{name: name, base: base, h: h, l: l}
}

// Get decodes the JSON body of a 200 answer into dest. Any other status or an
// empty body yields a StatusError; transport failures are returned wrapped.
// Every failure is logged.
func (c *Client) Get(ctx context.Context, path string, query url.Values, dest any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errutil.With(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.h.Do(req)
	if err != nil {
		c.l.Error("upstream request failed", "upstream", c.name, "path", path, "error", err)
		return errutil.With(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.l.Error("upstream returned non-success status", "upstream", c.name, "path", path, "status", resp.StatusCode)
		return &StatusError{Upstream: c.name, Code: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			c.l.Error("upstream returned empty body", "upstream", c.name, "path", path)
			return &StatusError{Upstream: c.name, Code: resp.StatusCode, Path: path}
		}
		c.l.Error("error decoding upstream response", "upstream", c.name, "path", path, "error", err)
		return errutil.With(err)
	}

	return nil
}
