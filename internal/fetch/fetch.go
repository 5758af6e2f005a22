// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/defunctgo/pkg/autocache"
)

// ErrStatus is returned for non-2xx responses. Nothing is cached for them.
var ErrStatus = errors.New("unexpected HTTP status")

// Request is one GET.
type Request struct {
	URL     string
	Headers map[string]string
	// Token, when set, is sent as a bearer Authorization header.
	Token string
}

// Key is the artifact key used when fetch is given no --cache-to. It depends
// on the URL and the headers, never on the token.
func (r Request) Key() string {
	parts := []string{r.URL}
	names := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		parts = append(parts, k+": "+r.Headers[k])
	}
	return "fetch-" + autocache.EncodeKey(strings.Join(parts, "\x00")) + ".out"
}

// ParseHeaders turns "Name: value" strings into a header map.
func ParseHeaders(specs []string) (map[string]string, error) {
	h := make(map[string]string, len(specs))
	for _, s := range specs {
		name, value, ok := strings.Cut(s, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, want Name: value", s)
		}
		h[name] = strings.TrimSpace(value)
	}
	return h, nil
}

// Hitter returns a computation that GETs a Request and yields the body.
func Hitter(client *http.Client) autocache.Func[Request, []byte] {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context, r Request) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		for k, v := range r.Headers {
			req.Header.Set(k, v)
		}
		if r.Token != "" {
			req.Header.Set("Authorization", "Bearer "+r.Token)
		}

		log.Debugf("GET %s", r.URL)
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		var doc bytes.Buffer
		if _, err := doc.ReadFrom(resp.Body); err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%w: %s: %s", ErrStatus, r.URL, resp.Status)
		}

		return doc.Bytes(), nil
	}
}
