package entry

import "time"

// Type identifies one of the four diary entry kinds.
type Type string

const (
	TypeDaily           Type = "daily"
	TypeExperiment      Type = "experiment"
	TypeParticipation   Type = "participation"
	TypeResearchMeeting Type = "research_meeting"
)

// ParseType validates a type tag from the outside world.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDaily, TypeExperiment, TypeParticipation, TypeResearchMeeting:
		return Type(s), nil
	}
	return "", ErrInvalidType
}

// Status is the lifecycle state of an entry.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusDraft     Status = "draft"
)

// Fields is the type-specific data payload. Values are strings, except for
// the image-list keys which hold ordered slices of stored image filenames.
// After a JSON round trip list values arrive as []any, so the accessors
// normalize both shapes.
type Fields map[string]any

// Text returns the string value for key, or "" when absent.
func (f Fields) Text(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// Images returns the image filename list for key, tolerating both []string
// and the []any produced by encoding/json.
func (f Fields) Images(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Entry is a diary entry. A draft is an Entry with StatusDraft and no hash.
type Entry struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Fields    Fields    `json:"data"`
	Hash      string    `json:"hash,omitempty"`
	Status    Status    `json:"status"`
}

// Ref is a lightweight listing row for an entry or draft.
type Ref struct {
	ID     string `json:"id"`
	Type   Type   `json:"type"`
	Date   string `json:"date"`
	Title  string `json:"title"`
	Tags   string `json:"tags"`
	Status Status `json:"status"`
}

// ImageRef points at an image referenced by an existing entry, used when a
// research-meeting report reuses images from daily or experiment entries.
type ImageRef struct {
	Filename    string `json:"filename"`
	SourceType  Type   `json:"source_type"`
	SourceField string `json:"source_field"`
}
