package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-backend/models"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func TestLogin(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"Invalid password","status":"error"}`)
			return
		}
		io.WriteString(w, `{"message":"Login successful","token":"tok"}`)
	})

	s, err := c.Login(context.Background(), "admin123")
	require.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok", s.Token)

	s, err = c.Login(context.Background(), "nope")
	require.Error(t, err)
	assert.False(t, s.Authenticated())
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid password", apiErr.Message)
}

func TestAdminCallsSendBearerToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/dashboard", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"unauthorized","status":"error"}`)
			return
		}
		io.WriteString(w, `{"stats":{"totalProjects":3,"publishedBlogs":1},"recentActivity":[]}`)
	})

	d, err := c.Dashboard(context.Background(), Session{Token: "tok"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, d.Stats.TotalProjects)
	assert.EqualValues(t, 1, d.Stats.PublishedBlogs)

	_, err = c.Dashboard(context.Background(), Session{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestQueryEncoding(t *testing.T) {
	var got string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RequestURI()
		io.WriteString(w, `[]`)
	})

	_, err := c.Projects(context.Background(), ProjectQuery{Type: models.ProjectTypeProfessional, Published: true})
	require.NoError(t, err)
	assert.Equal(t, "/projects?published=true&type=PROFESSIONAL", got)

	_, err = c.Blogs(context.Background(), BlogQuery{Featured: true, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, "/blogs?featured=true&limit=3", got)

	_, err = c.Blogs(context.Background(), BlogQuery{})
	require.NoError(t, err)
	assert.Equal(t, "/blogs", got)

	tags, err := c.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/tags", got)
	assert.Empty(t, tags)
}

func TestCreateBlogFieldError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/blogs", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"duplicate slug","status":"error","field":"slug","details":"hello-world"}`)
	})

	_, err := c.CreateBlog(context.Background(), Session{Token: "tok"}, models.NewBlog{Title: "Hello World"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "slug", apiErr.Field)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteAndNonJSONError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/projects/p1":
			assert.Equal(t, http.MethodDelete, r.Method)
			io.WriteString(w, `{"message":"Project deleted successfully"}`)
		default:
			w.WriteHeader(http.StatusBadGateway)
			io.WriteString(w, "upstream down")
		}
	})

	require.NoError(t, c.DeleteProject(context.Background(), Session{Token: "tok"}, "p1"))

	err := c.DeleteBlog(context.Background(), Session{Token: "tok"}, "b1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestSessionFile(t *testing.T) {
	path := t.TempDir() + "/nested/session.json"

	s, err := LoadSession(path)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	require.NoError(t, SaveSession(path, Session{Token: "tok"}))
	s, err = LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)

	require.NoError(t, ClearSession(path))
	require.NoError(t, ClearSession(path))
	s, err = LoadSession(path)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
}
