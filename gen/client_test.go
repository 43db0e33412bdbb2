package gen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
	lcschema "github.com/tmc/langchaingo/schema"

	"github.com/leadforge/salespipe/schema"
)

// mockModel is a scripted llms.Model for testing.
type mockModel struct {
	responses []string
	err       error
	calls     []string // captured user prompts
	systems   []string // captured system prompts
}

func (m *mockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	for _, msg := range messages {
		text := msg.Parts[0].(llms.TextContent).Text
		switch msg.Role {
		case lcschema.ChatMessageTypeSystem:
			m.systems = append(m.systems, text)
		case lcschema.ChatMessageTypeHuman:
			m.calls = append(m.calls, text)
		}
	}

	if m.err != nil {
		return nil, m.err
	}

	response := ""
	if len(m.responses) > 0 {
		response = m.responses[0]
		if len(m.responses) > 1 {
			m.responses = m.responses[1:]
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: response}},
	}, nil
}

func (m *mockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func testSchema() *schema.Schema {
	return &schema.Schema{
		Name: "verdict",
		Fields: map[string]schema.Field{
			"score": schema.IntRange(0, 100),
			"tier":  schema.StringEnum("low", "high"),
		},
	}
}

func TestGenerateValidOutput(t *testing.T) {
	model := &mockModel{responses: []string{`{"score": 88, "tier": "high"}`}}
	client := NewClient(model, Config{Model: "test-model"})

	out, err := client.Generate(context.Background(), testSchema(), "You are a judge.", "Score this.")
	assert.NoError(t, err)
	assert.Equal(t, 88, out["score"])
	assert.Equal(t, "high", out["tier"])

	// schema shape instructions ride along in the system prompt
	assert.Len(t, model.systems, 1)
	assert.Contains(t, model.systems[0], "You are a judge.")
	assert.Contains(t, model.systems[0], `"score"`)
	assert.Contains(t, model.systems[0], "0-100")
}

func TestGenerateStripsCodeFences(t *testing.T) {
	model := &mockModel{responses: []string{
		"Here you go:\n```json\n{\"score\": 12, \"tier\": \"low\"}\n```\nHope that helps!",
	}}
	client := NewClient(model, Config{})

	out, err := client.Generate(context.Background(), testSchema(), "sys", "user")
	assert.NoError(t, err)
	assert.Equal(t, 12, out["score"])
}

func TestGenerateBackendError(t *testing.T) {
	model := &mockModel{err: errors.New("connection refused")}
	client := NewClient(model, Config{})

	_, err := client.Generate(context.Background(), testSchema(), "sys", "user")
	assert.Error(t, err)
	assert.True(t, IsBackend(err))
	assert.False(t, IsSchemaViolation(err))

	var ge *Error
	assert.True(t, errors.As(err, &ge))
	assert.Equal(t, "verdict", ge.Schema)
}

func TestGenerateSchemaViolation(t *testing.T) {
	t.Run("invalid enum", func(t *testing.T) {
		model := &mockModel{responses: []string{`{"score": 88, "tier": "extreme"}`}}
		client := NewClient(model, Config{})

		_, err := client.Generate(context.Background(), testSchema(), "sys", "user")
		assert.True(t, IsSchemaViolation(err))

		// the validator's structured error is preserved for callers
		var verr *schema.ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "tier", verr.Errors[0].Path)
	})

	t.Run("not json at all", func(t *testing.T) {
		model := &mockModel{responses: []string{"I cannot answer that."}}
		client := NewClient(model, Config{})

		_, err := client.Generate(context.Background(), testSchema(), "sys", "user")
		assert.True(t, IsSchemaViolation(err))
	})
}

func TestGenerateCancelledContext(t *testing.T) {
	model := &mockModel{responses: []string{`{"score": 1, "tier": "low"}`}}
	client := NewClient(model, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, testSchema(), "sys", "user")
	assert.True(t, IsBackend(err))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no language", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around object", `Sure: {"a": 1} done`, `{"a": 1}`},
		{"no object", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.TrimSpace(extractJSON(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}
