package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenAIProviderEmbed(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq openaiEmbedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{0.1, 0.2}},
			},
		})
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "test-key", "text-embedding-3-small")

	vector, err := p.Embed(context.Background(), "текст")

	assert.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vector)
	assert.Equal(t, "/embeddings", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "text-embedding-3-small", gotReq.Model)
	assert.Equal(t, []string{"текст"}, gotReq.Input)
}

func TestOpenAIProviderDefaultBaseURL(t *testing.T) {
	p := NewOpenAIProvider("", "key", "model")

	assert.Equal(t, DefaultOpenAIBaseURL, p.baseURL)
}

func TestOpenAIProviderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid key"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "bad-key", "model")

	_, err := p.Embed(context.Background(), "текст")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
