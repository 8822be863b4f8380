package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaysparkx/LambdaCloudWrapper/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewJSONServer starts a server that answers every request with status and body.
func NewJSONServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	}))
	t.Cleanup(server.Close)

	return server
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(httpclient.HeaderContentType, httpclient.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// DecodeBody decodes an outgoing request body into a generic map so tests can
// check which keys are present.
func DecodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var decoded map[string]any

	err := json.Unmarshal(body, &decoded)
	require.NoError(t, err, "Request body should be valid JSON")

	return decoded
}

func ReadRequestBody(t *testing.T, req *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	return DecodeBody(t, body)
}

func AssertBearerToken(t *testing.T, header http.Header, token string) {
	t.Helper()
	assert.Equal(t, "Bearer "+token, header.Get(httpclient.HeaderAuthorization), "Authorization header mismatch")
}

func AssertNoKey(t *testing.T, body map[string]any, key string) {
	t.Helper()

	_, ok := body[key]
	assert.False(t, ok, "Body should not contain key %q", key)
}
