package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestElevenLabsSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/text-to-speech/") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "key" {
			t.Errorf("api key header = %q", r.Header.Get("xi-api-key"))
		}
		var req synthesizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Text != "hello" {
			t.Errorf("text = %q", req.Text)
		}
		w.Write([]byte{0xAA, 0xBB})
	}))
	defer srv.Close()

	e := NewElevenLabs("key", "voice-1")
	e.baseURL = srv.URL

	audio, err := e.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if len(audio) != 2 || audio[0] != 0xAA {
		t.Errorf("audio = %v", audio)
	}
}

func TestElevenLabsSynthesizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad key"))
	}))
	defer srv.Close()

	e := NewElevenLabs("wrong", "")
	e.baseURL = srv.URL

	if _, err := e.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on non-200")
	} else if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("err = %v", err)
	}
}

func TestElevenLabsEmptyTextIsNoOp(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	e := NewElevenLabs("key", "")
	e.baseURL = srv.URL

	audio, err := e.Synthesize(context.Background(), "")
	if err != nil || audio != nil {
		t.Errorf("audio = %v, err = %v", audio, err)
	}
	if called {
		t.Error("empty text must not hit the API")
	}
}
