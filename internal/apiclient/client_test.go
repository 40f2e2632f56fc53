package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"catalog-admin/internal/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type staticToken struct {
	token string
	err   error
}

func (s staticToken) Token() (string, error) {
	return s.token, s.err
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func TestClient_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success with bearer token", func(t *testing.T) {
		c := New("http://api.test/api/v1/", WithTokenSource(staticToken{token: "tok-1"}))
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "http://api.test/api/v1/product/getall-products?productType=single", req.URL.String())
			assert.Equal(t, "Bearer tok-1", req.Header.Get("Authorization"))
			return respond(http.StatusOK, `{"message":"ok","data":[{"name":"Phone"}]}`)
		})

		resp, err := c.Get(ctx, "/product/getall-products", url.Values{"productType": {"single"}})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)

		env, err := DecodeEnvelope[[]map[string]string](resp)
		require.NoError(t, err)
		assert.Equal(t, "ok", env.Message)
		assert.Equal(t, "Phone", env.Data[0]["name"])
	})

	t.Run("No token no header", func(t *testing.T) {
		c := New("http://api.test", WithTokenSource(staticToken{}))
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Empty(t, req.Header.Get("Authorization"))
			return respond(http.StatusOK, `{}`)
		})

		_, err := c.Get(ctx, "/brand/all-brand", nil)
		assert.NoError(t, err)
	})

	t.Run("Token read failure still sends", func(t *testing.T) {
		c := New("http://api.test", WithTokenSource(staticToken{err: errors.New("disk gone")}))
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Empty(t, req.Header.Get("Authorization"))
			return respond(http.StatusOK, `{}`)
		})

		_, err := c.Get(ctx, "/brand/all-brand", nil)
		assert.NoError(t, err)
	})

	t.Run("APIError with message", func(t *testing.T) {
		c := New("http://api.test")
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return respond(http.StatusNotFound, `{"message":"Brand not found"}`)
		})

		_, err := c.Get(ctx, "/brand/single-brand/mi", nil)
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Brand not found", apiErr.Message)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "Brand not found", Message(err, ""))
	})

	t.Run("APIError without message falls back", func(t *testing.T) {
		c := New("http://api.test")
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return respond(http.StatusInternalServerError, `<html>oops</html>`)
		})

		_, err := c.Get(ctx, "/brand/all-brand", nil)
		assert.Equal(t, FallbackMessage, Message(err, ""))
		assert.Equal(t, "Failed to load brands", Message(err, "Failed to load brands"))
		assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Empty(t, apiErr.Message)
		assert.Contains(t, err.Error(), FallbackMessage)
	})

	t.Run("NetworkError", func(t *testing.T) {
		c := New("http://api.test")
		c.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, err := c.Get(ctx, "/brand/all-brand", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, 0, StatusCode(err))
		assert.Equal(t, "Failed to load", Message(err, "Failed to load"))
	})

	t.Run("Unauthorized handler", func(t *testing.T) {
		called := 0
		c := New("http://api.test", WithUnauthorizedHandler(func() { called++ }))
		c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return respond(http.StatusUnauthorized, `{"message":"jwt expired"}`)
		})

		_, err := c.Get(ctx, "/category/get-all-category", nil)
		assert.Error(t, err)
		assert.Equal(t, 1, called)
	})
}

func TestClient_PostJSON(t *testing.T) {
	c := New("http://api.test")
	c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
		assert.Equal(t, "Laptops", payload["name"])
		assert.Equal(t, "cat-1", payload["category"])
		return respond(http.StatusCreated, `{"message":"created"}`)
	})

	resp, err := c.Post(context.Background(), "/subcategory/create-subcategory",
		JSON(map[string]string{"name": "Laptops", "category": "cat-1"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestClient_PostMultipart(t *testing.T) {
	img1 := media.File{Name: "a.png", ContentType: "image/png", Data: []byte("one")}
	img2 := media.File{Name: "b.png", ContentType: "image/png", Data: []byte("two")}

	c := New("http://api.test")
	c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		assert.Equal(t, []string{"Phones"}, req.MultipartForm.Value["name"])

		files := req.MultipartForm.File["image"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))
		assert.Equal(t, "b.png", files[1].Filename)
		return respond(http.StatusCreated, `{"message":"Category created"}`)
	})

	form := NewForm().Field("name", "Phones").Files("image", []media.File{img1, img2})
	assert.Equal(t, 2, form.FileCount())
	assert.Equal(t, map[string][]string{"name": {"Phones"}}, form.Values())

	resp, err := c.Post(context.Background(), "/category/create_category", form)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	c := New("http://api.test", WithRateLimit(0.001, 1))
	c.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
		return respond(http.StatusOK, `{}`)
	})

	_, err := c.Get(context.Background(), "/brand/all-brand", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Get(ctx, "/brand/all-brand", nil)
	assert.Error(t, err)
}

func TestPathParam(t *testing.T) {
	_, err := PathParam("  ")
	assert.ErrorIs(t, err, ErrEmptyPathParam)

	p, err := PathParam("mi phones")
	require.NoError(t, err)
	assert.Equal(t, "mi%20phones", p)
}
