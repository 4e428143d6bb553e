// Package composer builds the bounded generation prompt from a profile.
package composer

import (
	"fmt"
	"strings"

	"github.com/kalambet/solace/internal/profile"
)

// Window sizes for the prompt context. These are suffix windows over the
// profile's sequences; the composer never scans full history.
const (
	moodWindow  = 3
	topicWindow = 5
	turnWindow  = 10
)

const defaultPersona = `You are Sarah, an empathic and compassionate Female Psychologist or Psychiatrist, conducting a clinical interview in english.
A highly experienced and dedicated Clinical Psychologist with over 30 years of experience in clinical practice and research.
Specializing in trauma, anxiety disorders, and family therapy, Sarah has a proven track record of successfully treating a wide range of psychological conditions.
Her deep commitment to patient care and mental health advocacy has driven her to develop innovative therapeutic approaches and lead community mental health initiatives.
Sarah's extensive career is marked by her unwavering dedication to giving back to the community.
She has been actively involved in various community service efforts, including several years of work with children with disabilities and autistic children.
Her compassionate approach and ability to connect with patients of all ages have made her a respected figure in the field of psychology.
Sarah is not only a skilled clinician but also a passionate advocate for mental health, continuously striving to improve the lives of those she serves.
Don't include your expressions in the response in brackets.`

// Composer assembles the generation prompt: persona preamble, stored name,
// recent mood, frequent topics, recent conversation, and the new message,
// in that fixed order.
type Composer struct {
	persona string
}

// New creates a Composer. An empty persona selects the default preamble.
func New(persona string) *Composer {
	if persona == "" {
		persona = defaultPersona
	}
	return &Composer{persona: persona}
}

// Compose builds the prompt for the given profile and the newest user
// message. Output is a pure function of its inputs: identical profile state
// and message produce an identical prompt.
func (c *Composer) Compose(p *profile.Profile, message string) string {
	var sb strings.Builder

	sb.WriteString(c.persona)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "User's name: %s\n", p.Name)
	fmt.Fprintf(&sb, "Recent mood: %s\n", joinLabels(p.LastMoods(moodWindow)))
	fmt.Fprintf(&sb, "Frequent topics: %s\n", strings.Join(p.LastTopics(topicWindow), ", "))
	sb.WriteString("Previous conversation:\n")
	for _, turn := range p.LastTurns(turnWindow) {
		speaker := "Assistant"
		if turn.Role == profile.RoleUser {
			speaker = "User"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, turn.Content)
	}
	fmt.Fprintf(&sb, "User: %s\nChatbot: ", message)

	return sb.String()
}

func joinLabels[T ~string](labels []T) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
