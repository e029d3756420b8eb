package todos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/samber/lo"

	"github.com/Alp4ka/todopager"
)

const (
	// DefaultBaseURL is the hosted todos API.
	DefaultBaseURL = "https://64f0cd2e8a8b66ecf77a2324.mockapi.io/api"

	// TotalCountHeader carries the dataset size of a paged listing.
	TotalCountHeader = "X-Total-Count"

	defaultRetryMax = 3
	defaultTimeout  = 15 * time.Second
)

// ClientOptions configures NewClient. Zero values pick the defaults.
type ClientOptions struct {
	BaseURL string
	// RetryMax of 0 picks the default; a negative value disables retries.
	RetryMax int
	Timeout  time.Duration
	// HTTPClient is the transport retried by the client.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the todos API at <BaseURL>/todos. It implements Service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

var _ Service = (*Client)(nil)

// NewClient creates a client. Transient failures (connection errors, 429
// and 5xx other than 501) are retried up to RetryMax times.
func NewClient(opts ClientOptions) (*Client, error) {
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	retryClient := retryablehttp.NewClient()
	if opts.HTTPClient != nil {
		httpClient := *opts.HTTPClient
		retryClient.HTTPClient = &httpClient
	}
	retryClient.HTTPClient.Timeout = lo.Ternary(opts.Timeout > 0, opts.Timeout, defaultTimeout)

	switch {
	case opts.RetryMax < 0:
		retryClient.RetryMax = 0
	case opts.RetryMax > 0:
		retryClient.RetryMax = opts.RetryMax
	default:
		retryClient.RetryMax = defaultRetryMax
	}
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = logger
	// Hand the last response back so its status can be reported.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    baseURL,
		logger:     logger,
	}, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns every task matching filter. CreatedAt is applied client-side.
func (c *Client) List(ctx context.Context, filter Filter) ([]Task, error) {
	var tasks []Task

	_, err := c.do(ctx, http.MethodGet, "/todos", filter.Query(), nil, &tasks)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return filter.Apply(tasks), nil
}

// ListPage returns one page of tasks matching filter. The total comes from
// the X-Total-Count header when the server sends one. Otherwise it is
// estimated: a full page means at least one more task follows.
//
// CreatedAt cannot be combined with server paging and is rejected.
func (c *Client) ListPage(ctx context.Context, filter Filter, page, limit int) (todopager.Page[Task], error) {
	if filter.CreatedAt != nil {
		return todopager.Page[Task]{}, fmt.Errorf("list page: day filter requires a full listing")
	}

	q := todopager.RawPageQuery{Page: page, Limit: limit}.Decode()

	params := filter.Query()
	params.Set("page", strconv.Itoa(q.GetPage()))
	params.Set("limit", strconv.Itoa(q.GetLimit()))

	var tasks []Task

	header, err := c.do(ctx, http.MethodGet, "/todos", params, nil, &tasks)
	if err != nil {
		return todopager.Page[Task]{}, fmt.Errorf("list page %d: %w", q.GetPage(), err)
	}

	total, err := strconv.Atoi(header.Get(TotalCountHeader))
	if err != nil || total < 0 {
		total = q.GetOffset() + len(tasks)
		if !todopager.IsLastPage(q, tasks) {
			total++
		}
	}

	return todopager.Page[Task]{Items: tasks, Total: total}, nil
}

// PageFetcher adapts ListPage to a todopager.FetchFunc.
func (c *Client) PageFetcher(filter Filter) todopager.FetchFunc[Task] {
	return func(ctx context.Context, page, itemsPerPage int) (todopager.Page[Task], error) {
		return c.ListPage(ctx, filter, page, itemsPerPage)
	}
}

// Get returns a single task.
func (c *Client) Get(ctx context.Context, id string) (Task, error) {
	var task Task

	_, err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &task)
	if err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", id, err)
	}

	return task, nil
}

// Create adds a task.
func (c *Client) Create(ctx context.Context, payload CreatePayload) (Task, error) {
	var task Task

	_, err := c.do(ctx, http.MethodPost, "/todos", nil, payload, &task)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Replace sends the non-nil fields of patch with PUT.
func (c *Client) Replace(ctx context.Context, patch Patch) (Task, error) {
	if patch.ID == "" {
		return Task{}, fmt.Errorf("replace task: empty id")
	}

	var task Task

	_, err := c.do(ctx, http.MethodPut, taskPath(patch.ID), nil, patch, &task)
	if err != nil {
		return Task{}, fmt.Errorf("replace task %s: %w", patch.ID, err)
	}

	return task, nil
}

// Delete removes a task and returns it.
func (c *Client) Delete(ctx context.Context, id string) (Task, error) {
	if id == "" {
		return Task{}, fmt.Errorf("delete task: empty id")
	}

	var task Task

	_, err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, &task)
	if err != nil {
		return Task{}, fmt.Errorf("delete task %s: %w", id, err)
	}

	return task, nil
}

func taskPath(id string) string {
	return "/todos/" + url.PathEscape(id)
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (http.Header, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "api request",
		slog.String("method", method),
		slog.String("url", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Status: resp.StatusCode, Method: method, URL: endpoint}
	}

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}

	return resp.Header, nil
}
