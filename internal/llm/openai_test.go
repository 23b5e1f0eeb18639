package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIGenerate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "{\"ok\":true}"}}],
			"usage": {"prompt_tokens": 42, "completion_tokens": 10, "total_tokens": 52}
		}`))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(srv.URL, "sk-test")
	comp, err := gen.Generate(context.Background(), Request{
		System:      "system prompt",
		Prompt:      "user prompt",
		Model:       "gpt-4o-mini",
		MaxTokens:   600,
		Temperature: 0.4,
		ForceJSON:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comp.Content != `{"ok":true}` {
		t.Fatalf("unexpected content: %q", comp.Content)
	}
	if comp.PromptTokens != 42 || comp.CompletionTokens != 10 || comp.TotalTokens != 52 {
		t.Fatalf("unexpected usage: %+v", comp)
	}

	if gotBody["model"] != "gpt-4o-mini" {
		t.Fatalf("expected model in payload, got %v", gotBody["model"])
	}
	rf, ok := gotBody["response_format"].(map[string]any)
	if !ok || rf["type"] != "json_object" {
		t.Fatalf("expected json_object response_format, got %v", gotBody["response_format"])
	}
	if gotBody["temperature"].(float64) != 0.4 {
		t.Fatalf("expected temperature 0.4, got %v", gotBody["temperature"])
	}
}

func TestOpenAIGenerateProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(srv.URL, "sk-test")
	_, err := gen.Generate(context.Background(), Request{Model: "gpt-4o-mini", Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error on non-2xx status")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestEstimateCost(t *testing.T) {
	// gpt-4o-mini: (1000*0.15 + 2000*0.60) / 1e6 = 0.00135
	if got := EstimateCost("gpt-4o-mini", 1000, 2000); got != 0.00135 {
		t.Fatalf("unexpected cost: %v", got)
	}
	if got := EstimateCost("unknown-model", 1000, 2000); got != 0 {
		t.Fatalf("unknown model should cost 0, got %v", got)
	}
}
