package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
)

// Candidates are the snapshot locations probed, in priority order.
var Candidates = []string{
	"logs.json",
	"reports/caretaker-logs-export.json",
	"caretaker-logs-export.json",
}

// Source yields the raw bytes of one snapshot candidate.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource reads a candidate from the local file system.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return data, nil
}

// HTTPSource fetches a candidate with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string { return s.URL }

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrUnreachable, err)
	}
	return body, nil
}

// FileSources returns the candidates resolved against dir.
func FileSources(dir string) []Source {
	out := make([]Source, len(Candidates))
	for i, c := range Candidates {
		out[i] = FileSource{Path: filepath.Join(dir, filepath.FromSlash(c))}
	}
	return out
}

// HTTPSources returns the candidates resolved against baseURL. A non-empty
// token is sent as a bearer token on every request.
func HTTPSources(ctx context.Context, baseURL, token string) ([]Source, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot base URL %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.New("snapshot base URL must be http or https")
	}

	client := http.DefaultClient
	if token != "" {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
	}

	out := make([]Source, len(Candidates))
	for i, c := range Candidates {
		ref, _ := url.Parse(c)
		out[i] = HTTPSource{URL: base.ResolveReference(ref).String(), Client: client}
	}
	return out, nil
}
