package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Complete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "rewritten"}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	got, err := client.Complete(context.Background(), "system instructions", "user prompt")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "rewritten" {
		t.Errorf("Complete() = %q, want %q", got, "rewritten")
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotReq.Model != "test-model" {
		t.Errorf("request model = %q, want %q", gotReq.Model, "test-model")
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("request had %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "system instructions" {
		t.Errorf("first message = %+v, want system instructions", gotReq.Messages[0])
	}
	if gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "user prompt" {
		t.Errorf("second message = %+v, want user prompt", gotReq.Messages[1])
	}
}

func TestClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	_, err := client.Complete(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("Complete() expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Complete() error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("APIError status = %d, want %d", apiErr.StatusCode, http.StatusTooManyRequests)
	}
	if apiErr.Body != "rate limited" {
		t.Errorf("APIError body = %q, want %q", apiErr.Body, "rate limited")
	}
}

func TestClient_Complete_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	_, err := client.Complete(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("Complete() expected error, got nil")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("decode failures should not be APIErrors")
	}
}

func TestClient_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "cmpl-1", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	if _, err := client.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("Complete() expected error for empty choices, got nil")
	}
}

func TestClient_Complete_Cancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can detect the client disconnect
		// and cancel r.Context(); otherwise Close blocks forever.
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Complete(ctx, "sys", "user")
	if err == nil {
		t.Fatal("Complete() expected error after cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Complete() error = %v, want context.Canceled", err)
	}
}
