package assistant_test

import (
	"strings"
	"testing"

	"github.com/dkellner/daybook/internal/assistant"
	"github.com/dkellner/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildMessages(t *testing.T) {
	req := assistant.Request{
		Notes: []domain.Note{
			{Date: "2026-09-01", Content: "Met Bob at the park"},
			{Date: "2026-08-31", Content: "quiet day"},
		},
		History: []domain.Message{
			{Role: domain.RoleUser, Content: "Who did I meet?"},
			{Role: domain.RoleAssistant, Content: "You met Bob on 2026-09-01."},
		},
		Question: "Where did we meet?",
	}

	messages := assistant.BuildMessages(req)

	assert.Len(t, messages, 5)

	// Instruction frame leads with every note rendered as a dated block.
	assert.Equal(t, "user", messages[0].Role)
	assert.Contains(t, messages[0].Content, "Date: 2026-09-01\nContent:\nMet Bob at the park")
	assert.Contains(t, messages[0].Content, "Date: 2026-08-31\nContent:\nquiet day")
	assert.Contains(t, messages[0].Content, "\n\n---\n\n")

	// Priming assistant turn before the real conversation.
	assert.Equal(t, "assistant", messages[1].Role)

	// History verbatim, then the new question last.
	assert.Equal(t, "Who did I meet?", messages[2].Content)
	assert.Equal(t, "assistant", messages[3].Role)
	assert.Equal(t, "user", messages[4].Role)
	assert.Equal(t, "Where did we meet?", messages[4].Content)
}

func TestBuildMessages_NoHistory(t *testing.T) {
	req := assistant.Request{
		Notes:    []domain.Note{{Date: "2026-09-01", Content: "hello"}},
		Question: "What did I write?",
	}

	messages := assistant.BuildMessages(req)

	assert.Len(t, messages, 3)
	assert.Equal(t, "What did I write?", messages[2].Content)
}

func TestFlattenMessages(t *testing.T) {
	flat := assistant.FlattenMessages([]assistant.Message{
		{Role: "user", Content: "context here"},
		{Role: "assistant", Content: "understood"},
		{Role: "user", Content: "the question"},
	})

	assert.Contains(t, flat, "User: context here")
	assert.Contains(t, flat, "Assistant: understood")
	assert.True(t, strings.HasSuffix(flat, "\n\nAssistant:"))

	// Turn order is preserved.
	assert.Less(t,
		strings.Index(flat, "context here"),
		strings.Index(flat, "the question"),
	)
}
