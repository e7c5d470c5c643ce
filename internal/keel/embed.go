package keel

import (
	"regexp"
	"strings"
	"time"

	"keel-relay/internal/discord"
)

const (
	DefaultTitle = "Deployment Update"
	Color        = 0x326CE5
	ImageField   = "Image"
)

// Keel messages look like "Successfully updated deployment default/app (registry/app:1.2.3)".
var messagePattern = regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)`)

// BuildEmbed never fails: an unparsable createdAt falls back to now and an
// unstructured message is used verbatim as the description.
func BuildEmbed(p Payload, now time.Time) discord.Embed {
	embed := discord.Embed{
		Title:     DefaultTitle,
		Color:     Color,
		Timestamp: parseTimestamp(p.CreatedAt, now),
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		embed.Title = name
	}

	m := messagePattern.FindStringSubmatch(p.Message)
	if m == nil {
		embed.Description = p.Message
		return embed
	}
	embed.Description = strings.TrimSpace(m[1])
	embed.Fields = []discord.Field{{
		Name:   ImageField,
		Value:  strings.TrimSpace(m[2]),
		Inline: false,
	}}
	return embed
}

func parseTimestamp(raw string, now time.Time) time.Time {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return now
	}
	return ts
}
