package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/diarist/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	requests []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func TestQuestion_UsesTaskLabel(t *testing.T) {
	client := &mockLLMClient{response: "  What was the trickiest part of the review?  "}
	a := NewDiaryAssistant(client)

	q, err := a.Question(context.Background(), "Design Review (API)")

	require.NoError(t, err)
	assert.Equal(t, "What was the trickiest part of the review?", q)
	require.Len(t, client.requests, 1)
	assert.Equal(t, llm.TaskQuestion, client.requests[0].Task)
	assert.Equal(t, "Task: Design Review (API)", client.requests[0].UserPrompt)
	assert.Equal(t, questionSystemPrompt, client.requests[0].SystemPrompt)
}

func TestQuestion_ErrorIsReturned(t *testing.T) {
	a := NewDiaryAssistant(&mockLLMClient{err: llm.ErrUnavailable})

	_, err := a.Question(context.Background(), "Kickoff")
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestRefine_SkipsBlankInput(t *testing.T) {
	client := &mockLLMClient{response: "unused"}
	a := NewDiaryAssistant(client)

	out, err := a.Refine(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, client.requests)
}

func TestRefine_EmptyModelOutput(t *testing.T) {
	a := NewDiaryAssistant(&mockLLMClient{response: "\n"})

	_, err := a.Refine(context.Background(), "i fixd the bug")
	assert.ErrorIs(t, err, llm.ErrEmptyOutput)
}

func TestSummarize_ListsNonEmptyEntries(t *testing.T) {
	client := &mockLLMClient{response: "This week I reviewed the API design."}
	a := NewDiaryAssistant(client)

	out, err := a.Summarize(context.Background(), []NoteEntry{
		{Task: "Design Review", Text: "Reviewed the API"},
		{Task: "Kickoff", Text: ""},
	})

	require.NoError(t, err)
	assert.Equal(t, "This week I reviewed the API design.", out)
	require.Len(t, client.requests, 1)
	assert.Equal(t, "Entries:\n- Design Review: Reviewed the API\n", client.requests[0].UserPrompt)
}

func TestSummarize_NoEntriesNoCall(t *testing.T) {
	client := &mockLLMClient{}
	out, err := NewDiaryAssistant(client).Summarize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, client.requests)
}

func TestDaySlice_Prompt(t *testing.T) {
	client := &mockLLMClient{response: "Set up the test fixtures."}
	a := NewDiaryAssistant(client)

	out, err := a.DaySlice(context.Background(), "Wrote the test suite", 2, 5)

	require.NoError(t, err)
	assert.Equal(t, "Set up the test fixtures.", out)
	assert.Equal(t, llm.TaskDaySlice, client.requests[0].Task)
	assert.Contains(t, client.requests[0].UserPrompt, "Wrote the test suite")
	assert.Contains(t, client.requests[0].UserPrompt, "day 2 of 5")
}

func TestDaySlice_RejectsBadOrdinal(t *testing.T) {
	a := NewDiaryAssistant(&mockLLMClient{response: "x"})

	for _, tc := range []struct{ ordinal, total int }{{0, 3}, {4, 3}, {1, 0}} {
		_, err := a.DaySlice(context.Background(), "d", tc.ordinal, tc.total)
		assert.Error(t, err)
	}
}

func TestDeterministicQuestion(t *testing.T) {
	q := DeterministicQuestion("Design Review")
	assert.Contains(t, q, `"Design Review"`)
}

// TestDaySlice_WithHTTPTestServer runs the full path through the Ollama
// client so the request shape and response decoding stay in sync.
func TestDaySlice_WithHTTPTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["prompt"], "day 1 of 2")
		assert.Equal(t, daySliceSystemPrompt, body["system"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"model": "llama3.2", "response": "Drafted the schema.\n"})
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL

	a := NewDiaryAssistant(llm.NewOllamaClient(cfg, llm.NoopObserver{}))
	out, err := a.DaySlice(context.Background(), "Designed and migrated the schema", 1, 2)

	require.NoError(t, err)
	assert.Equal(t, "Drafted the schema.", out)
}
