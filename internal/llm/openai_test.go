package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newOpenAITestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOpenAIClientWithConfig(OpenAIConfig{
		APIKey:  "sk-openai-test",
		BaseURL: server.URL,
		Model:   "gpt-4o",
		Timeout: 5 * time.Second,
	})
}

func TestOpenAICompleteWithSystem(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-openai-test" {
			t.Errorf("missing bearer token, got %q", got)
		}

		var req OpenAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected system + user messages, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected roles: %s, %s", req.Messages[0].Role, req.Messages[1].Role)
		}
		if req.Temperature != 0 {
			t.Errorf("expected temperature 0, got %v", req.Temperature)
		}

		w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "def display_instance(instance):\n    pass"}}]}`))
	})

	got, err := client.CompleteWithSystem(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("CompleteWithSystem failed: %v", err)
	}
	if !strings.Contains(got, "display_instance") {
		t.Errorf("unexpected completion: %q", got)
	}
}

func TestOpenAICompleteOmitsSystemMessage(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req OpenAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("empty system prompt must send only the user message, got %+v", req.Messages)
		}
		w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}}]}`))
	})

	if _, err := client.Complete(context.Background(), "prompt"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}

func TestOpenAIAPIError(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "model not found", "type": "invalid_request_error"}}`))
	})

	_, err := client.Complete(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected API error, got %v", err)
	}
}

func TestOpenAIHTTPError(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "status 429") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestOpenAIEmptyKey(t *testing.T) {
	client := NewOpenAIClient("")
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestOpenAINoChoices(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Complete(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "no completion") {
		t.Errorf("expected no-completion error, got %v", err)
	}
}
