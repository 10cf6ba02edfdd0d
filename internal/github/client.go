package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/thomiceli/gists-gone/internal/config"
	"github.com/thomiceli/gists-gone/internal/gist"
	"golang.org/x/time/rate"
)

const apiVersion = "2022-11-28"

// ErrBadCredentials is returned when the API rejects the token, before any
// deletion has been attempted.
var ErrBadCredentials = errors.New("bad credentials: check your GitHub API token")

type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return "github api status " + strconv.Itoa(e.Code)
}

// Client is a bearer-token client for the GitHub gists API. Every request
// goes through a token-bucket limiter to avoid secondary rate limits; there
// is no retry or backoff, errors are surfaced as-is.
type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
	perPage  int
	maxPages int
}

func NewClient(token string) *Client {
	return &Client{
		baseURL:  config.C.GithubAPIURL,
		token:    token,
		http:     &http.Client{Timeout: time.Duration(config.C.GithubTimeout) * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(config.C.GithubRps), 1),
		perPage:  config.C.GithubPerPage,
		maxPages: config.C.GithubMaxPages,
	}
}

func (c *Client) auth(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
}

// ListGists fetches all gists of the authenticated user, page by page.
// The provider caps the listing at perPage*maxPages items (3000 by
// default); fetching stops early on the first short page.
func (c *Client) ListGists(ctx context.Context) ([]gist.Gist, error) {
	var all []gist.Gist
	for page := 1; page <= c.maxPages; page++ {
		gists, err := c.listPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, gists...)
		if len(gists) < c.perPage {
			break
		}
	}
	return all, nil
}

func (c *Client) listPage(ctx context.Context, page int) ([]gist.Gist, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/gists?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	c.auth(req)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var raw []struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		Public      bool      `json:"public"`
		CreatedAt   time.Time `json:"created_at"`
		HTMLURL     string    `json:"html_url"`
		Files       map[string]struct {
			Language string `json:"language"`
			Size     uint64 `json:"size"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]gist.Gist, 0, len(raw))
	for _, r := range raw {
		visibility := gist.PrivateVisibility
		if r.Public {
			visibility = gist.PublicVisibility
		}

		// The language of a gist is the language of its first file,
		// with filename-based detection as a fallback.
		filenames := make([]string, 0, len(r.Files))
		var size uint64
		for name, file := range r.Files {
			filenames = append(filenames, name)
			size += file.Size
		}
		sort.Strings(filenames)

		language := gist.UnknownLanguage
		if len(filenames) > 0 {
			first := filenames[0]
			language = gist.ResolveLanguage(r.Files[first].Language, first)
		}

		out = append(out, gist.Gist{
			ID:          r.ID,
			Description: r.Description,
			Language:    language,
			Visibility:  visibility,
			CreatedAt:   r.CreatedAt,
			Size:        size,
			NbFiles:     len(r.Files),
			HTMLURL:     r.HTMLURL,
		})
	}
	return out, nil
}

// DeleteGist deletes a single gist by id.
func (c *Client) DeleteGist(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/gists/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	c.auth(req)

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrBadCredentials, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
