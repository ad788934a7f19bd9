package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		_, err := NewClient(Config{APIKey: key})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("NewClient(%q) error = %v, want ErrMissingAPIKey", key, err)
		}
	}
}

func TestNewClient_DefaultValues(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", client.baseURL, DefaultBaseURL)
	}
	if client.httpClient == nil {
		t.Fatal("httpClient is nil")
	}
	if client.httpClient.Timeout != 0 {
		t.Errorf("timeout = %v, want none", client.httpClient.Timeout)
	}
}

func TestNewClient_CustomValues(t *testing.T) {
	customHTTPClient := &http.Client{Timeout: 60 * time.Second}

	client, err := NewClient(Config{
		BaseURL:    "https://custom.example.com/",
		APIKey:     "custom-key",
		HTTPClient: customHTTPClient,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.httpClient != customHTTPClient {
		t.Error("httpClient not set correctly")
	}
	if client.baseURL != "https://custom.example.com" {
		t.Errorf("baseURL = %s, want trailing slash trimmed", client.baseURL)
	}
}

func TestNew_WithOptions(t *testing.T) {
	client, err := New("test-key",
		WithBaseURL("https://example.com"),
		WithTimeout(10*time.Second),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.BaseURL() != "https://example.com" {
		t.Errorf("baseURL = %s, want https://example.com", client.BaseURL())
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", client.httpClient.Timeout)
	}
}

func TestClient_SendMail_Request(t *testing.T) {
	var got MailSendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != MailSendPath {
			t.Errorf("path = %s, want %s", r.URL.Path, MailSendPath)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Authorization = %s, want Bearer test-key", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))

	req := NewMailSendRequest("from@example.com", "a@example.com", "Subject", "Body")
	if err := client.SendMail(context.Background(), req); err != nil {
		t.Fatalf("SendMail() error = %v", err)
	}

	if len(got.Personalizations) != 1 || got.Personalizations[0].To[0].Email != "a@example.com" {
		t.Errorf("personalizations = %+v", got.Personalizations)
	}
	if got.From.Email != "from@example.com" {
		t.Errorf("from = %s", got.From.Email)
	}
	if got.Subject != "Subject" {
		t.Errorf("subject = %s", got.Subject)
	}
	if len(got.Content) != 1 || got.Content[0].Type != "text/plain" || got.Content[0].Value != "Body" {
		t.Errorf("content = %+v", got.Content)
	}
}

func TestMailSendRequest_OmitsEmptyAttachments(t *testing.T) {
	data, err := json.Marshal(NewMailSendRequest("f@example.com", "t@example.com", "s", "b"))
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["attachments"]; ok {
		t.Error("attachments key present without attachments")
	}
	for _, key := range []string{"personalizations", "from", "subject", "content"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestMailSendRequest_AttachmentWireNames(t *testing.T) {
	req := NewMailSendRequest("f@example.com", "t@example.com", "s", "b")
	req.Attachments = []Attachment{{
		Content:     "aGVsbG8=",
		Filename:    "report.txt.zip",
		Type:        "application/zip",
		Disposition: DispositionAttachment,
	}}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Attachments []map[string]string `json:"attachments"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"content":     "aGVsbG8=",
		"filename":    "report.txt.zip",
		"type":        "application/zip",
		"disposition": "attachment",
	}
	if len(decoded.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(decoded.Attachments))
	}
	for k, v := range want {
		if decoded.Attachments[0][k] != v {
			t.Errorf("attachment[%q] = %q, want %q", k, decoded.Attachments[0][k], v)
		}
	}
}

func TestClient_Do_ErrorBodyVerbatim(t *testing.T) {
	const body = `{"errors":[{"message":"internal"}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, body)
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))

	err := client.SendMail(context.Background(), NewMailSendRequest("f", "t", "s", "b"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if apiErr.Body != body {
		t.Errorf("Body = %q, want %q", apiErr.Body, body)
	}
}

func TestClient_Do_LargeErrorBodyVerbatim(t *testing.T) {
	body := strings.Repeat("x", 200<<10)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, body)
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))

	err := client.SendMail(context.Background(), NewMailSendRequest("f", "t", "s", "b"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if len(apiErr.Body) != len(body) {
		t.Errorf("len(Body) = %d, want %d", len(apiErr.Body), len(body))
	}
}

func TestClient_Do_NoRetry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, _ := New("test-key", WithBaseURL(server.URL))

	if err := client.Do(context.Background(), http.MethodPost, "/x", nil); err == nil {
		t.Fatal("expected error for 503 response")
	}
	if atomic.LoadInt32(&attempts) != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestClient_Do_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, _ := New("test-key", WithBaseURL(url))

	err := client.Do(context.Background(), http.MethodPost, MailSendPath, nil)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if netErr.URL != url+MailSendPath {
		t.Errorf("URL = %s, want %s", netErr.URL, url+MailSendPath)
	}
}

func TestClient_Do_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, _ := New("test-key", WithBaseURL(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Do(ctx, http.MethodPost, MailSendPath, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		err      *APIError
		expected string
	}{
		{&APIError{StatusCode: 401, Body: "unauthorized"}, "API error 401: unauthorized"},
		{&APIError{StatusCode: 500}, "API error 500"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("Error() = %q, want %q", got, tt.expected)
		}
	}
}
