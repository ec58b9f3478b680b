package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hirehub/voice-agents/internal/interview"
	"github.com/hirehub/voice-agents/internal/models"
	"github.com/hirehub/voice-agents/internal/services"
	"github.com/hirehub/voice-agents/internal/utils"
)

type fakeService struct {
	interviews []services.StartInterviewRequest
	postings   []string
	progress   models.Progress
	err        error
}

func (f *fakeService) StartInterview(ctx context.Context, req services.StartInterviewRequest) (services.SessionInfo, error) {
	if f.err != nil {
		return services.SessionInfo{}, f.err
	}
	f.interviews = append(f.interviews, req)
	return services.SessionInfo{SessionID: "s-1", Type: services.SessionTypeInterview, Room: req.Room}, nil
}

func (f *fakeService) StartPosting(ctx context.Context, roomName string) (services.SessionInfo, error) {
	if f.err != nil {
		return services.SessionInfo{}, f.err
	}
	f.postings = append(f.postings, roomName)
	return services.SessionInfo{SessionID: "p-1", Type: services.SessionTypePosting, Room: roomName}, nil
}

func (f *fakeService) Progress(sessionID string) (models.Progress, error) {
	if f.err != nil {
		return models.Progress{}, f.err
	}
	return f.progress, nil
}

func (f *fakeService) Transcript(sessionID string) ([]models.TranscriptEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func (f *fakeService) End(ctx context.Context, sessionID string) (interview.EndResult, error) {
	if f.err != nil {
		return interview.EndResult{}, f.err
	}
	return interview.EndResult{Status: "ended"}, nil
}

func newTestRouter(svc services.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSessionHandler(svc)
	r.POST("/sessions", h.Create)
	r.GET("/sessions/:session_id/progress", h.Progress)
	r.GET("/sessions/:session_id/transcript", h.Transcript)
	r.POST("/sessions/:session_id/end", h.End)
	return r
}

func TestCreateInterviewSession(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	body, _ := json.Marshal(map[string]any{
		"type": "interview",
		"room": "room-1",
		"job":  map[string]any{"title": "Backend Engineer"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var info services.SessionInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.SessionID != "s-1" || info.Type != "interview" {
		t.Errorf("info = %+v", info)
	}
	if len(svc.interviews) != 1 || svc.interviews[0].Job.Title != "Backend Engineer" {
		t.Errorf("service saw %+v", svc.interviews)
	}
}

func TestCreateSessionRejectsBadType(t *testing.T) {
	r := newTestRouter(&fakeService{})

	body := []byte(`{"type":"karaoke","room":"room-1"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if apiErr.Code != utils.CodeInvalidArgument {
		t.Errorf("code = %q", apiErr.Code)
	}
}

func TestCreateSessionRejectsMissingRoom(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader([]byte(`{"type":"posting"}`))))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestProgressNotFound(t *testing.T) {
	svc := &fakeService{err: utils.E(utils.CodeNotFound, "SessionService.Progress", "session not found", nil)}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/nope/progress", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestTranscriptAlwaysReturnsArray(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/s-1/transcript", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		Transcript []models.TranscriptEntry `json:"transcript"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Transcript == nil {
		t.Error("transcript should be an empty array, not null")
	}
}

func TestEndSession(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions/s-1/end", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res interview.EndResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Status != "ended" {
		t.Errorf("status = %q", res.Status)
	}
}
