package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name      string
	model     string
	err       error
	delay     time.Duration
	response  *Response
	callCount int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.model }

// mockLogger records formatted info and warn lines
type mockLogger struct {
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.infoMessages = append(m.infoMessages, template)
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.warnMessages = append(m.warnMessages, template)
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func textResponse(provider, text string) *Response {
	return &Response{
		Content:      Message{Role: RoleAssistant, Parts: []Part{{Text: text}}},
		ProviderName: provider,
		Usage:        &Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}
}

func userRequest() *Request {
	return UserText("", "How do I cancel my order?", 0.2, 256)
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", response: textResponse("primary", "Hello")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary}, &Config{FallbackEnabled: true, RetryAttempts: 3, RetryDelay: time.Millisecond}, logger)

	resp, err := manager.GenerateContent(context.Background(), userRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.Text() != "Hello" {
		t.Errorf("Expected 'Hello', got %q", resp.Text())
	}
	if primary.callCount != 1 {
		t.Errorf("Expected 1 call, got %d", primary.callCount)
	}
	if len(logger.infoMessages) != 1 {
		t.Errorf("Expected 1 success log, got %d", len(logger.infoMessages))
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("mock provider error")}
	secondary := &mockProvider{name: "secondary", response: textResponse("secondary", "from secondary")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond}, logger)

	resp, err := manager.GenerateContent(context.Background(), userRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("Expected secondary provider, got %s", resp.ProviderName)
	}
	if primary.callCount != 2 {
		t.Errorf("Expected primary to be retried twice, got %d", primary.callCount)
	}
	if len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 failure log, got %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("primary down")}
	secondary := &mockProvider{name: "secondary", err: errors.New("secondary down")}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 1}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), userRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("Expected ErrAllProvidersFailed, got: %v", err)
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("primary down")}
	secondary := &mockProvider{name: "secondary", response: textResponse("secondary", "unused")}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: false, RetryAttempts: 1}, &mockLogger{})

	if _, err := manager.GenerateContent(context.Background(), userRequest()); err == nil {
		t.Fatal("Expected error when fallback disabled")
	}
	if secondary.callCount != 0 {
		t.Errorf("Expected secondary untouched, got %d calls", secondary.callCount)
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager(nil, &Config{}, &mockLogger{})
	if _, err := manager.GenerateContent(context.Background(), userRequest()); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("Expected ErrNoProvidersConfigured, got: %v", err)
	}
}

func TestGenerateContent_InvalidRequest(t *testing.T) {
	manager := NewManager([]Provider{&mockProvider{name: "p"}}, &Config{}, &mockLogger{})
	if _, err := manager.GenerateContent(context.Background(), &Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Expected ErrInvalidRequest, got: %v", err)
	}
}

func TestGenerateContent_EmptyTextIsFailure(t *testing.T) {
	empty := &mockProvider{name: "empty", response: textResponse("empty", "")}
	manager := NewManager([]Provider{empty}, &Config{RetryAttempts: 1}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), userRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("Expected ErrAllProvidersFailed, got: %v", err)
	}
}

func TestGenerateContent_GlobalTimeout(t *testing.T) {
	slow := &mockProvider{name: "slow", delay: time.Second, response: textResponse("slow", "late")}
	manager := NewManager([]Provider{slow}, &Config{RetryAttempts: 1, MaxTotalTimeout: 20 * time.Millisecond}, &mockLogger{})

	start := time.Now()
	_, err := manager.GenerateContent(context.Background(), userRequest())
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if !errors.Is(err, ErrProviderTimeout) {
		t.Errorf("Expected ErrProviderTimeout, got: %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("timeout not honoured, took %v", time.Since(start))
	}
}
