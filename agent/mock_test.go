package agent

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	lcschema "github.com/tmc/langchaingo/schema"

	"github.com/leadforge/salespipe/gen"
)

// mockModel is a scripted llms.Model shared by the agent tests.
type mockModel struct {
	responses []string
	err       error
	calls     []string // captured user prompts, in order
	systems   []string // captured system prompts, in order
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

func testClient(model *mockModel) *gen.Client {
	return gen.NewClient(model, gen.Config{Model: "test-model"})
}
