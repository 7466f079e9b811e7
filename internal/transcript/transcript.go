// Package transcript renders a conversation for reading outside the app.
package transcript

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/rcliao/companion/internal/model"
)

const timeLayout = "2006-01-02 15:04"

func speaker(r model.Role, assistant string) string {
	if r == model.RoleUser {
		return "You"
	}
	return assistant
}

// Markdown writes the conversation as a Markdown document. assistant names
// the agent the replies are attributed to; empty falls back to "Assistant".
func Markdown(c model.Conversation, assistant string, loc *time.Location) string {
	if assistant == "" {
		assistant = "Assistant"
	}
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	fmt.Fprintf(&b, "_Mode: %s · Updated %s_\n", c.Mode, c.LastUpdate.Time().In(loc).Format(timeLayout))
	for _, m := range c.Messages {
		fmt.Fprintf(&b, "\n## %s · %s\n\n", speaker(m.Role, assistant), m.Timestamp.Time().In(loc).Format(timeLayout))
		b.WriteString(strings.TrimSpace(m.Content))
		b.WriteString("\n")
		if m.MediaURL != "" {
			fmt.Fprintf(&b, "\n![%s](%s)\n", m.MediaType, m.MediaURL)
		}
	}
	return b.String()
}

// HTML renders the Markdown transcript to an HTML fragment.
func HTML(c model.Conversation, assistant string, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(c, assistant, loc)), &buf); err != nil {
		return nil, fmt.Errorf("render transcript: %w", err)
	}
	return buf.Bytes(), nil
}
