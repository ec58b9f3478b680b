package posting

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hirehub/voice-agents/internal/models"
)

func TestClientSubmitCreated(t *testing.T) {
	var received models.JobPostingDraft
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/jobs" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"job-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res := c.Submit(context.Background(), models.JobPostingDraft{Title: "Backend Engineer"})

	if !res.Success {
		t.Fatalf("success = false, error = %q", res.Error)
	}
	if string(res.Job) != `{"id":"job-1"}` {
		t.Errorf("job payload = %s", res.Job)
	}
	if received.Title != "Backend Engineer" {
		t.Errorf("server received %+v", received)
	}
}

func TestClientSubmitAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("title required"))
	}))
	defer srv.Close()

	res := NewClient(srv.URL).Submit(context.Background(), models.JobPostingDraft{})
	if res.Success {
		t.Fatal("success = true, want failure")
	}
	if res.Error != "API error 422: title required" {
		t.Errorf("error = %q", res.Error)
	}
}

func TestClientSubmitConnectionRefused(t *testing.T) {
	// grab a port nothing listens on
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	res := NewClient("http://" + addr).Submit(context.Background(), models.JobPostingDraft{})
	if res.Success {
		t.Fatal("success = true, want failure")
	}
	if !strings.Contains(res.Error, "Could not connect to the job posting service") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestClientSubmitTimeout(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	res := NewClient(srv.URL).Submit(ctx, models.JobPostingDraft{})
	if res.Success {
		t.Fatal("success = true, want failure")
	}
	if res.Error != "Request timed out. Please try again." {
		t.Errorf("error = %q", res.Error)
	}
}
