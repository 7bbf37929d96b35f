// Package client talks to the portfolio API. Admin calls take an explicit
// Session; the client itself holds no credentials.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
)

var ErrUnauthorized = errors.New("unauthorized")

// Session is the admin token obtained from Login.
type Session struct {
	Token string `json:"token"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Field      string `json:"field,omitempty"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

// Is makes every 401 match ErrUnauthorized so callers can drop the session.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient gets a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// ProjectQuery mirrors the public list filters.
type ProjectQuery struct {
	Type      models.ProjectType
	Published bool
	Featured  bool
}

func (q ProjectQuery) values() url.Values {
	v := url.Values{}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.Published {
		v.Set("published", "true")
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	return v
}

type BlogQuery struct {
	Published bool
	Featured  bool
	Limit     int
}

func (q BlogQuery) values() url.Values {
	v := url.Values{}
	if q.Published {
		v.Set("published", "true")
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (c *Client) Login(ctx context.Context, password string) (Session, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, Session{}, http.MethodPost, "/auth/login", map[string]string{"password": password}, &resp); err != nil {
		return Session{}, err
	}
	return Session{Token: resp.Token}, nil
}

func (c *Client) Projects(ctx context.Context, q ProjectQuery) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, Session{}, http.MethodGet, withQuery("/projects", q.values()), nil, &projects)
	return projects, err
}

func (c *Client) Project(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, Session{}, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) Blogs(ctx context.Context, q BlogQuery) ([]models.Blog, error) {
	var blogs []models.Blog
	err := c.do(ctx, Session{}, http.MethodGet, withQuery("/blogs", q.values()), nil, &blogs)
	return blogs, err
}

func (c *Client) BlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := c.do(ctx, Session{}, http.MethodGet, "/blogs/"+url.PathEscape(slug), nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := c.do(ctx, Session{}, http.MethodGet, "/tags", nil, &tags)
	return tags, err
}

func (c *Client) AdminProjects(ctx context.Context, s Session) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, s, http.MethodGet, "/admin/projects", nil, &projects)
	return projects, err
}

func (c *Client) AdminBlogs(ctx context.Context, s Session) ([]models.Blog, error) {
	var blogs []models.Blog
	err := c.do(ctx, s, http.MethodGet, "/admin/blogs", nil, &blogs)
	return blogs, err
}

func (c *Client) CreateProject(ctx context.Context, s Session, in models.NewProject) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, s, http.MethodPost, "/admin/projects", in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, s Session, id string, patch models.ProjectPatch) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, s, http.MethodPut, "/admin/projects/"+url.PathEscape(id), patch, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, s Session, id string) error {
	return c.do(ctx, s, http.MethodDelete, "/admin/projects/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateBlog(ctx context.Context, s Session, in models.NewBlog) (*models.Blog, error) {
	var blog models.Blog
	if err := c.do(ctx, s, http.MethodPost, "/admin/blogs", in, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) UpdateBlog(ctx context.Context, s Session, id string, patch models.BlogPatch) (*models.Blog, error) {
	var blog models.Blog
	if err := c.do(ctx, s, http.MethodPut, "/admin/blogs/"+url.PathEscape(id), patch, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (c *Client) DeleteBlog(ctx context.Context, s Session, id string) error {
	return c.do(ctx, s, http.MethodDelete, "/admin/blogs/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Dashboard(ctx context.Context, s Session) (*models.Dashboard, error) {
	var dashboard models.Dashboard
	if err := c.do(ctx, s, http.MethodGet, "/admin/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// do sends body as JSON and decodes a 2xx response into out.
func (c *Client) do(ctx context.Context, s Session, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if s.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(respBody, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
