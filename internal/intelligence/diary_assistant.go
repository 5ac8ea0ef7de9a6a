package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/diarist/internal/llm"
)

// NoteEntry is one task's answer fed into the weekly summary.
type NoteEntry struct {
	Task string
	Text string
}

// DiaryAssistant wraps the four text capabilities the diary flow needs.
// Each method is a single blocking model call; errors are returned as-is.
type DiaryAssistant interface {
	// Question produces a prompting question for the task label.
	Question(ctx context.Context, task string) (string, error)

	// Refine corrects text without altering its content.
	Refine(ctx context.Context, text string) (string, error)

	// Summarize turns the week's entries into first-person notes.
	Summarize(ctx context.Context, entries []NoteEntry) (string, error)

	// DaySlice writes day ordinal (1-based) of total from description.
	DaySlice(ctx context.Context, description string, ordinal, total int) (string, error)
}

type diaryAssistant struct {
	client llm.LLMClient
}

// NewDiaryAssistant creates a DiaryAssistant backed by an LLM client.
func NewDiaryAssistant(client llm.LLMClient) DiaryAssistant {
	return &diaryAssistant{client: client}
}

func (a *diaryAssistant) generate(ctx context.Context, task llm.TaskType, system, user string) (string, error) {
	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: system,
		UserPrompt:   user,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", task, err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%s: %w", task, llm.ErrEmptyOutput)
	}
	return text, nil
}

func (a *diaryAssistant) Question(ctx context.Context, task string) (string, error) {
	return a.generate(ctx, llm.TaskQuestion, questionSystemPrompt, "Task: "+task)
}

func (a *diaryAssistant) Refine(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return a.generate(ctx, llm.TaskRefine, refineSystemPrompt, text)
}

func (a *diaryAssistant) Summarize(ctx context.Context, entries []NoteEntry) (string, error) {
	var b strings.Builder
	for _, e := range entries {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", e.Task, strings.TrimSpace(e.Text))
	}
	if b.Len() == 0 {
		return "", nil
	}
	return a.generate(ctx, llm.TaskSummarize, summarizeSystemPrompt, "Entries:\n"+b.String())
}

func (a *diaryAssistant) DaySlice(ctx context.Context, description string, ordinal, total int) (string, error) {
	if ordinal < 1 || total < 1 || ordinal > total {
		return "", fmt.Errorf("day %d of %d is out of range", ordinal, total)
	}
	user := fmt.Sprintf("Full description:\n%s\n\nWrite the entry for day %d of %d.", description, ordinal, total)
	return a.generate(ctx, llm.TaskDaySlice, daySliceSystemPrompt, user)
}

// DeterministicQuestion is the question asked when no model is reachable.
func DeterministicQuestion(task string) string {
	return fmt.Sprintf("What did you work on for %q this week? Mention what you did, any challenges, and what you learned.", task)
}
