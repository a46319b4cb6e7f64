package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catdocs-backend/internal/rewrite"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient("test-key", "test-model")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = ts.URL
	return client
}

func completionResponse(content string) string {
	resp := map[string]any{
		"id":    "cmpl-1",
		"model": "test-model",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
	}
	out, _ := json.Marshal(resp)
	return string(out)
}

func TestGenerate(t *testing.T) {
	var captured chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(completionResponse("Whiskers saw the report and found it very tasty.")))
	})

	story, err := client.Generate(context.Background(), rewrite.Input{DocumentID: "doc-1", Text: "the extracted text"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(story, "Whiskers") {
		t.Fatalf("story = %q", story)
	}

	if captured.Model != "test-model" {
		t.Fatalf("model = %q", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v", captured.Messages)
	}
	if captured.MaxTokens != 1000 {
		t.Fatalf("max_tokens = %d, want 1000", captured.MaxTokens)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.8 {
		t.Fatalf("temperature = %v, want 0.8", captured.Temperature)
	}
}

func TestGenerateEmptyInputSkipsNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Generate(context.Background(), rewrite.Input{Text: "   "})
	if !rewrite.IsKind(err, rewrite.KindEmptyInput) {
		t.Fatalf("got %v, want empty_input", err)
	}
	if called {
		t.Fatal("empty input must not reach the API")
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("   ")))
	})

	_, err := client.Generate(context.Background(), rewrite.Input{Text: "the extracted text"})
	if !rewrite.IsKind(err, rewrite.KindEmptyResponse) {
		t.Fatalf("got %v, want empty_response", err)
	}
}

func TestGenerateDegenerateResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("Meow.")))
	})

	_, err := client.Generate(context.Background(), rewrite.Input{Text: "the extracted text"})
	if !rewrite.IsKind(err, rewrite.KindDegenerateResponse) {
		t.Fatalf("got %v, want degenerate_response", err)
	}
}

func TestGenerateAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
	})

	_, err := client.Generate(context.Background(), rewrite.Input{Text: "the extracted text"})
	if !rewrite.IsKind(err, rewrite.KindTransportFault) {
		t.Fatalf("got %v, want transport_fault", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error should carry the API message: %v", err)
	}
}

func TestGenerateMissingChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cmpl-1","choices":[]}`))
	})

	_, err := client.Generate(context.Background(), rewrite.Input{Text: "the extracted text"})
	if !rewrite.IsKind(err, rewrite.KindEmptyResponse) {
		t.Fatalf("got %v, want empty_response", err)
	}
}

func TestIsAvailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.MaxTokens != 5 {
			t.Errorf("probe max_tokens = %d, want 5", req.MaxTokens)
		}
		w.Write([]byte(completionResponse("OK")))
	})

	if !client.IsAvailable(context.Background()) {
		t.Fatal("expected available")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "model"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}
