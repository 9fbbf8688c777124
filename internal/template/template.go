package template

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"support-router/internal/model"
	"support-router/internal/routing"
)

// ErrTemplateMissing is returned by Respond for an intent without a template.
var ErrTemplateMissing = errors.New("template missing")

// Responder answers ZERO_COST intents from static text. Immutable after New.
type Responder struct {
	templates map[model.Intent]string
}

// New builds a Responder and checks that every ZERO_COST intent of table has a
// template. A gap is a routing.ErrConfiguration.
func New(table routing.Table, templates map[model.Intent]string) (*Responder, error) {
	copied := make(map[model.Intent]string, len(templates))
	for intent, text := range templates {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		copied[intent] = text
	}

	var missing []string
	for _, intent := range table.Intents(model.BucketZeroCost) {
		if _, ok := copied[intent]; !ok {
			missing = append(missing, string(intent))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no template for ZERO_COST intent(s): %s",
			routing.ErrConfiguration, strings.Join(missing, ", "))
	}

	return &Responder{templates: copied}, nil
}

// Respond returns the template text of intent unmodified.
func (r *Responder) Respond(intent model.Intent) (string, error) {
	text, ok := r.templates[intent]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateMissing, intent)
	}
	return text, nil
}

// Load reads an intent -> text YAML mapping from path.
func Load(path string) (map[model.Intent]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read templates %q: %v", routing.ErrConfiguration, path, err)
	}
	var file map[string]string
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: decode templates %q: %v", routing.ErrConfiguration, path, err)
	}
	out := make(map[model.Intent]string, len(file))
	for label, text := range file {
		out[model.NormalizeIntent(label)] = text
	}
	return out, nil
}
