package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMockEmbedDeterministic(t *testing.T) {
	m := NewMockProvider(16)
	a, err := m.Embed(context.Background(), "폐암 방사선치료")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := m.Embed(context.Background(), "폐암 방사선치료")
	if len(a) != 16 {
		t.Fatalf("expected dimension 16, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("mock embeddings must be deterministic, differ at %d", i)
		}
	}
	c, _ := m.Embed(context.Background(), "다른 텍스트")
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different inputs should embed differently")
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorType
	}{
		{fmt.Errorf("status 429: rate limit exceeded"), ErrorRate},
		{fmt.Errorf("insufficient_quota for this key"), ErrorQuota},
		{fmt.Errorf("request timeout"), ErrorTransient},
		{fmt.Errorf("invalid request"), ErrorPermanent},
		{nil, ErrorType("")},
	}
	for _, tc := range cases {
		if got := ClassifyError(tc.err); got != tc.want {
			t.Fatalf("ClassifyError(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestOpenAIEmbedParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			http.NotFound(w, r)
			return
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["model"] != "text-embedding-ada-002" {
			t.Errorf("unexpected model %v", req["model"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	p := &OpenAIProvider{apiKey: "test", baseURL: srv.URL, client: &http.Client{Timeout: time.Second}}
	vec, err := p.Embed(context.Background(), "텍스트")
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 3 || vec[1] != 0.2 {
		t.Fatalf("unexpected embedding: %v", vec)
	}
}

func TestOpenAICompleteSendsSamplingParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["model"] != "gpt-4" {
			t.Errorf("unexpected model %v", req["model"])
		}
		if req["temperature"] != 0.7 || req["presence_penalty"] != 0.6 {
			t.Errorf("sampling params not sent: %v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "답변"}}},
		})
	}))
	defer srv.Close()

	p := &OpenAIProvider{apiKey: "test", baseURL: srv.URL, client: &http.Client{Timeout: time.Second}}
	out, err := p.Complete(context.Background(), "시스템", "질문")
	if err != nil {
		t.Fatal(err)
	}
	if out != "답변" {
		t.Fatalf("unexpected completion: %q", out)
	}
}

func TestOpenAIProviderRequiresKey(t *testing.T) {
	p := NewOpenAIProvider("")
	if _, err := p.Embed(context.Background(), "text"); err == nil {
		t.Fatal("embed without an api key must fail")
	}
	if _, err := p.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("complete without an api key must fail")
	}
}
