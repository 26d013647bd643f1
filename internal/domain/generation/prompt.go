package generation

import (
	"fmt"
	"strings"
)

const promptHeader = `You are a YouTube chapter generator. Given a video transcript, produce a concise list of chapters.

Rules:
- Output one chapter per line in the form "MM:SS Title" (or "HH:MM:SS Title" for videos over an hour).
- The first chapter must start at 00:00.
- Titles are short and descriptive, without numbering or trailing punctuation.
- Output only the chapter lines, nothing else.`

// BuildPrompt renders the generation prompt from the transcript and optional
// user instructions.
func BuildPrompt(t Transcript, instructions string) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	if title := strings.TrimSpace(t.Title); title != "" {
		fmt.Fprintf(&b, "\n\nVideo title: %s", title)
	}
	if author := strings.TrimSpace(t.Author); author != "" {
		fmt.Fprintf(&b, "\nChannel: %s", author)
	}
	if instructions = strings.TrimSpace(instructions); instructions != "" {
		fmt.Fprintf(&b, "\n\nAdditional instructions:\n%s", instructions)
	}
	fmt.Fprintf(&b, "\n\nTranscript:\n%s", t.Text)
	return b.String()
}
