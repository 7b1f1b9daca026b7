package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func TestClient_Get_SendsQueryTokenAndRequestID(t *testing.T) {
	// Arrange
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"code":0,"msg":"ok"}`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL + "/", Timeout: time.Second},
		WithTokenSource(TokenFunc(func() string { return "abc123" })))

	// Act
	var out payload
	err := c.Get(context.Background(), "/api/agent/agent/index", url.Values{"pageNumber": {"1"}}, &out)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Msg)
	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/agent/agent/index", got.URL.Path)
	assert.Equal(t, "pageNumber=1", got.URL.RawQuery)
	assert.Equal(t, "Bearer abc123", got.Header.Get("Authorization"))
	_, parseErr := uuid.Parse(got.Header.Get(HeaderRequestID))
	assert.NoError(t, parseErr)
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	var auth string
	var seen bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, seen = r.Header.Get("Authorization"), true
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL}, WithTokenSource(TokenFunc(func() string { return "" })))
	require.NoError(t, c.Get(context.Background(), "/api/x", nil, nil))

	assert.True(t, seen)
	assert.Empty(t, auth)
}

func TestClient_NonSuccessStatusIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	err := c.Get(context.Background(), "/api/agent/agent/index", nil, &payload{})

	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "upstream down", se.Body)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestClient_BusinessFailureIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":1,"msg":"密码错误"}`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	var out payload
	err := c.Do(context.Background(), http.MethodPost, "/api/login/login", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, 1, out.Code)
	assert.Equal(t, "密码错误", out.Msg)
}

func TestClient_UndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	err := c.Get(context.Background(), "/api/x", nil, &payload{})
	assert.ErrorContains(t, err, "decode")
}

func TestClient_PostJSON(t *testing.T) {
	var contentType, body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	err := c.PostJSON(context.Background(), "/player/transfer/list", map[string]int{"page": 1}, nil)

	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"page":1}`, body)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{BaseURL: server.URL})
	err := c.Get(ctx, "/api/x", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
