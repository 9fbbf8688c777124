package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"support-router/internal/model"
	"support-router/pkg/log"
)

func TestRemoteClassify_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req remoteRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Text != "where is my parcel" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"intent":"TRACK_ORDER","confidence":0.98}`))
	}))
	defer ts.Close()

	c, err := NewRemote(RemoteConfig{URL: ts.URL}, log.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	p, err := c.Classify(context.Background(), "where is my parcel")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if p.Intent != model.IntentTrackOrder || p.Confidence != 0.98 {
		t.Errorf("prediction = %+v", p)
	}
}

func TestRemoteClassify_RetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"intent":"complaint","confidence":1.7}`))
	}))
	defer ts.Close()

	c, _ := NewRemote(RemoteConfig{URL: ts.URL, MaxRetries: 3}, log.NewNop())

	p, err := c.Classify(context.Background(), "this is unacceptable")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
	if p.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", p.Confidence)
	}
}

func TestRemoteClassify_GivesUp(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c, _ := NewRemote(RemoteConfig{URL: ts.URL, MaxRetries: 2}, log.NewNop())

	_, err := c.Classify(context.Background(), "hello")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 1 try + 2 retries", got)
	}
}

func TestRemoteClassify_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	c, _ := NewRemote(RemoteConfig{URL: ts.URL, MaxRetries: 5}, log.NewNop())

	if _, err := c.Classify(context.Background(), "hello"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestRemoteClassify_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c, _ := NewRemote(RemoteConfig{URL: ts.URL, MaxRetries: 1}, log.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := c.Classify(ctx, "hello"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewRemote_RequiresURL(t *testing.T) {
	if _, err := NewRemote(RemoteConfig{}, log.NewNop()); err == nil {
		t.Fatal("expected error")
	}
}
