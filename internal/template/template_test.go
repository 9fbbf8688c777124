package template_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"support-router/internal/model"
	"support-router/internal/routing"
	"support-router/internal/template"
)

func TestNew_DefaultsCoverDefaultTable(t *testing.T) {
	r, err := template.New(routing.DefaultTable(), template.Defaults())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, intent := range routing.DefaultTable().Intents(model.BucketZeroCost) {
		text, err := r.Respond(intent)
		if err != nil || text == "" {
			t.Errorf("Respond(%s) = %q, %v", intent, text, err)
		}
	}
}

func TestNew_MissingTemplateIsConfigurationError(t *testing.T) {
	templates := template.Defaults()
	delete(templates, model.IntentTrackOrder)

	_, err := template.New(routing.DefaultTable(), templates)
	if !errors.Is(err, routing.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
	if !strings.Contains(err.Error(), string(model.IntentTrackOrder)) {
		t.Errorf("error should name the intent: %v", err)
	}
}

func TestNew_BlankTemplateCountsAsMissing(t *testing.T) {
	templates := template.Defaults()
	templates[model.IntentReview] = "   "

	if _, err := template.New(routing.DefaultTable(), templates); !errors.Is(err, routing.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestRespond_Unmodified(t *testing.T) {
	want := template.Defaults()[model.IntentTrackOrder]
	r, err := template.New(routing.DefaultTable(), template.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Respond(model.IntentTrackOrder)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := r.Respond(model.IntentComplaint); !errors.Is(err, template.ErrTemplateMissing) {
		t.Errorf("complaint err = %v, want ErrTemplateMissing", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	body := "TRACK_ORDER: \"Track it in your account.\"\nreview: Thanks!\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := template.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got[model.IntentTrackOrder] != "Track it in your account." {
		t.Errorf("track_order = %q", got[model.IntentTrackOrder])
	}
	if got[model.IntentReview] != "Thanks!" {
		t.Errorf("review = %q", got[model.IntentReview])
	}
}
