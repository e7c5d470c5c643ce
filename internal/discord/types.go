package discord

import "time"

// Discord rejects embeds whose parts exceed these lengths.
const (
	maxTitleRunes       = 256
	maxDescriptionRunes = 4096
	maxFieldNameRunes   = 256
	maxFieldValueRunes  = 1024
)

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Embed struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       int       `json:"color"`
	Timestamp   time.Time `json:"timestamp"`
	Fields      []Field   `json:"fields,omitempty"`
}

// WebhookMessage is the body of an execute-webhook call.
type WebhookMessage struct {
	Username string  `json:"username,omitempty"`
	Embeds   []Embed `json:"embeds"`
}

func (e Embed) clamped() Embed {
	out := e
	out.Title = trimRunes(e.Title, maxTitleRunes)
	out.Description = trimRunes(e.Description, maxDescriptionRunes)
	if len(e.Fields) > 0 {
		out.Fields = make([]Field, len(e.Fields))
		for i, f := range e.Fields {
			out.Fields[i] = Field{
				Name:   trimRunes(f.Name, maxFieldNameRunes),
				Value:  trimRunes(f.Value, maxFieldValueRunes),
				Inline: f.Inline,
			}
		}
	}
	out.Timestamp = e.Timestamp.UTC()
	return out
}

func trimRunes(v string, max int) string {
	r := []rune(v)
	if len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
