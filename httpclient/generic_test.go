package httpclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testKey struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestGetJSON_ReturnsTypedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(testKey{ID: "1", Name: "laptop"})
	}))
	defer server.Close()

	client := httpclient.New(server.URL)

	key, err := httpclient.GetJSON[testKey](t.Context(), client, "/keys/1")

	require.NoError(t, err)
	require.Equal(t, "1", key.ID)
	require.Equal(t, "laptop", key.Name)
}

func TestPostJSON_SendsBodyAndReturnsTypedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var input testKey
		_ = json.NewDecoder(r.Body).Decode(&input)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(testKey{ID: "1", Name: input.Name})
	}))
	defer server.Close()

	client := httpclient.New(server.URL)

	key, err := httpclient.PostJSON[testKey](t.Context(), client, "/keys", testKey{ID: "", Name: "desktop"})

	require.NoError(t, err)
	require.Equal(t, "1", key.ID)
	require.Equal(t, "desktop", key.Name)
}

func TestDeleteJSON_ReturnsTypedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer server.Close()

	client := httpclient.New(server.URL)

	result, err := httpclient.DeleteJSON[map[string]map[string]any](t.Context(), client, "/keys/1")

	require.NoError(t, err)
	require.Empty(t, result["data"])
}

func TestDoJSON_ReturnsServiceErrorOnFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := httpclient.New(server.URL)

	_, err := httpclient.DoJSON[testKey](t.Context(), client, &httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/keys",
		Headers: map[string]string{"X-Trace": "1"},
		Body:    testKey{ID: "", Name: "bad"},
	})

	require.ErrorIs(t, err, httpclient.ErrHTTPStatus)
}
