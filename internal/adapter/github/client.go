package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/orgcontributors/internal/app"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client returns pages of github organization repositories and repository contributors.
// This struct is an adapter for app.GithubClient.
// Client is not modified after creation, so it's safe to use it from many goroutines.
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string

	responseMaxSize int
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// authToken is optional.
func NewClient(doer HTTPDoer, address string, authToken string) *Client {
	c := Client{
		doer:      doer,
		address:   address,
		authToken: authToken,

		responseMaxSize: 1024 * 1024 * 10,
	}

	return &c
}

// OrgReposPage returns single page of organization repositories.
func (c *Client) OrgReposPage(ctx context.Context, org string, page int, perPage int) (app.Page[app.Repository], error) {
	if org == "" {
		return app.Page[app.Repository]{}, app.InvalidRequestError("organization cannot be empty")
	}
	if err := validatePaging(page, perPage); err != nil {
		return app.Page[app.Repository]{}, err
	}

	path := fmt.Sprintf("/orgs/%s/repos", url.PathEscape(org))
	var resp reposResponse
	hasNext, err := c.getPage(ctx, "org_repos", path, page, perPage, &resp)
	if err != nil {
		return app.Page[app.Repository]{}, err
	}

	return app.Page[app.Repository]{
		Items:   resp.ToRepositories(),
		HasNext: hasNext,
	}, nil
}

// ContributorsPage returns single page of repository contributors.
func (c *Client) ContributorsPage(ctx context.Context, owner string, repo string, page int, perPage int) (app.Page[app.ContributorRecord], error) {
	if owner == "" {
		return app.Page[app.ContributorRecord]{}, app.InvalidRequestError("repository owner cannot be empty")
	}
	if repo == "" {
		return app.Page[app.ContributorRecord]{}, app.InvalidRequestError("repository name cannot be empty")
	}
	if err := validatePaging(page, perPage); err != nil {
		return app.Page[app.ContributorRecord]{}, err
	}

	path := fmt.Sprintf("/repos/%s/%s/contributors", url.PathEscape(owner), url.PathEscape(repo))
	var resp contributorsResponse
	hasNext, err := c.getPage(ctx, "repo_contributors", path, page, perPage, &resp)
	if err != nil {
		return app.Page[app.ContributorRecord]{}, err
	}

	return app.Page[app.ContributorRecord]{
		Items:   resp.ToContributors(),
		HasNext: hasNext,
	}, nil
}

// getPage fetches page and decodes it into v. Empty response leaves v untouched.
// Github pages are numbered from 1.
func (c *Client) getPage(ctx context.Context, endpoint string, path string, page int, perPage int, v interface{}) (bool, error) {
	u, err := url.Parse(c.address + path)
	if err != nil {
		return false, &app.TransportError{Err: fmt.Errorf("invalid url: %w", err)}
	}

	q := make(url.Values)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page+1))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, &app.TransportError{Err: fmt.Errorf("creating http request: %w", err)}
	}

	body, header, code, err := c.makeRequest(httpReq, c.responseMaxSize)
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	if err != nil {
		return false, &app.TransportError{
			StatusCode: code,
			Err:        fmt.Errorf("making http request: %w", err),
		}
	}
	if code == http.StatusNoContent {
		return false, nil
	}

	if err := jsoniter.Unmarshal(body, v); err != nil {
		return false, &app.TransportError{
			StatusCode: code,
			Err:        fmt.Errorf("unmarshalling response: %w", err),
		}
	}

	return hasNextPage(header.Get("Link")), nil
}

func (c *Client) makeRequest(req *http.Request, maxBytes int) ([]byte, http.Header, int, error) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "token "+c.authToken)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("doing http request: %w", err)
	}
	// Always drain body before close to allow connection reuse.
	// See: http://tleyden.github.io/blog/2016/11/21/tuning-the-go-http-client-library-for-load-testing/
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNoContent {
		return nil, resp.Header, resp.StatusCode, nil
	}
	if resp.StatusCode/100 > 3 {
		if c.checkRateLimitExceeded(resp.Header) {
			return nil, resp.Header, resp.StatusCode, errors.New("rate limit exceeded")
		}
		return nil, resp.Header, resp.StatusCode, fmt.Errorf("got invalid http status code: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return nil, resp.Header, resp.StatusCode, fmt.Errorf("reading http response body: %w", err)
	}

	return b, resp.Header, resp.StatusCode, nil
}

func (c *Client) checkRateLimitExceeded(h http.Header) bool {
	if s := h.Get("X-RateLimit-Remaining"); s != "" {
		if limit, err := strconv.Atoi(s); err == nil && limit == 0 {
			return true
		}
	}
	return false
}

func validatePaging(page int, perPage int) error {
	if page < 0 {
		return app.InvalidRequestError("page cannot be negative")
	}
	if perPage < 1 || perPage > app.MaxPageSize {
		return app.InvalidRequestError(fmt.Sprintf("per page must be in range <1..%d>", app.MaxPageSize))
	}
	return nil
}
