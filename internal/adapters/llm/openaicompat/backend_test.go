package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pet-diet-planner/internal/domain/diet"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newServer(t *testing.T, status int, reply string, seen *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
}

func TestGenerate(t *testing.T) {
	var seen chatRequest
	srv := newServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"{\"name\":\"Plan\"}"},"finish_reason":"stop"}]}`, &seen)
	defer srv.Close()

	b, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	defer b.client.HTTP.CloseIdleConnections()

	text, err := b.Generate(context.Background(), diet.GenerateRequest{
		Model:       "gpt-4o-mini",
		Prompt:      "hola",
		Temperature: 0.2,
		JSON:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"name":"Plan"}`, text)
	assert.Equal(t, "gpt-4o-mini", seen.Model)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, "user", seen.Messages[0].Role)
	assert.Equal(t, "hola", seen.Messages[0].Content)
	require.NotNil(t, seen.ResponseFormat)
	assert.Equal(t, "json_object", seen.ResponseFormat.Type)
}

func TestGenerate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		reply  string
	}{
		{"server error", http.StatusBadGateway, `{"error":{"message":"upstream"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"content filter", http.StatusOK, `{"choices":[{"message":{"content":""},"finish_reason":"content_filter"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, tc.status, tc.reply, nil)
			defer srv.Close()

			b, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
			require.NoError(t, err)
			defer b.client.HTTP.CloseIdleConnections()

			_, err = b.Generate(context.Background(), diet.GenerateRequest{Model: "m", Prompt: "p"})
			assert.Error(t, err)
		})
	}
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
