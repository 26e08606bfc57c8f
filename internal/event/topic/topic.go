// Package topic provides dot-separated event topics and wildcard patterns.
//
//	selections.*      matches selections.changed (not selections.a.b)
//	command.**        matches command, command.completed, command.a.b
//	**                matches everything
package topic

import "strings"

// Topic is a hierarchical event type such as "selections.changed".
type Topic string

// Wildcard constants for pattern matching.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator is the character used to separate topic segments.
	Separator = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// IsWildcard returns true if the topic contains any wildcard characters.
func (t Topic) IsWildcard() bool {
	return strings.Contains(string(t), WildcardSingle)
}

// IsValid reports whether t is non-empty and has no empty segments.
// Wildcards must fill a whole segment.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
		if strings.Contains(seg, WildcardSingle) && seg != WildcardSingle && seg != WildcardMulti {
			return false
		}
	}
	return true
}

// Matches reports whether the concrete topic t matches pattern.
func (t Topic) Matches(pattern Topic) bool {
	return matchSegments(pattern.Segments(), t.Segments())
}

func matchSegments(pattern, segments []string) bool {
	if len(pattern) == 0 {
		return len(segments) == 0
	}

	switch pattern[0] {
	case WildcardMulti:
		for i := 0; i <= len(segments); i++ {
			if matchSegments(pattern[1:], segments[i:]) {
				return true
			}
		}
		return false
	case WildcardSingle:
		return len(segments) > 0 && matchSegments(pattern[1:], segments[1:])
	default:
		return len(segments) > 0 && pattern[0] == segments[0] && matchSegments(pattern[1:], segments[1:])
	}
}
