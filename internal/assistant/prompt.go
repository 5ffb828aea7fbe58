package assistant

import (
	"fmt"
	"strings"
)

// EmptyNotesAnswer is returned without calling a provider when the user has
// no notes at all.
const EmptyNotesAnswer = "You don't have any notes yet. Start taking notes and I'll be able to help you search through them!"

const instructionFrame = `You are a helpful AI assistant that helps users search through and understand their notes. Here are all the user's notes:

%s

Use these notes to answer questions. If you reference specific information, mention which date it came from. If the answer isn't in the notes, let them know politely.`

const primingReply = "I understand. I have access to your notes and will use them to answer your questions, referencing specific dates when relevant."

// BuildMessages assembles the conversation sent to a provider: a fixed
// instruction frame holding every note as context, a priming assistant turn,
// the session's prior turns verbatim, then the new question.
func BuildMessages(req Request) []Message {
	blocks := make([]string, len(req.Notes))
	for i, note := range req.Notes {
		blocks[i] = fmt.Sprintf("Date: %s\nContent:\n%s", note.Date, note.Content)
	}
	notesContext := strings.Join(blocks, "\n\n---\n\n")

	messages := make([]Message, 0, len(req.History)+3)
	messages = append(messages,
		Message{Role: "user", Content: fmt.Sprintf(instructionFrame, notesContext)},
		Message{Role: "assistant", Content: primingReply},
	)
	for _, turn := range req.History {
		messages = append(messages, Message{Role: string(turn.Role), Content: turn.Content})
	}
	return append(messages, Message{Role: "user", Content: req.Question})
}

// FlattenMessages renders the message sequence as a single prompt for
// providers that take plain text instead of a message array.
func FlattenMessages(messages []Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.ToUpper(m.Role[:1]) + m.Role[1:])
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	b.WriteString("\n\nAssistant:")
	return b.String()
}
