package topic

import "testing"

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"selections.changed", "selections.changed", true},
		{"selections.changed", "selections.*", true},
		{"selections.changed", "*.changed", true},
		{"selections.changed", "mode.*", false},
		{"selections.changed", "selections", false},
		{"command.completed", "**", true},
		{"command.completed", "command.**", true},
		{"command", "command.**", true},
		{"a.b.c", "a.*", false},
		{"a.b.c", "a.**.c", true},
		{"a.c", "a.**.c", true},
		{"a.b.d", "a.**.c", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.topic)+"~"+string(tt.pattern), func(t *testing.T) {
			if got := tt.topic.Matches(tt.pattern); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTopicIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"selections.changed", true},
		{"selections.*", true},
		{"**", true},
		{"", false},
		{".changed", false},
		{"selections.", false},
		{"a..b", false},
		{"sel*.changed", false},
	}

	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("IsValid(%q): expected %v, got %v", tt.topic, tt.want, got)
		}
	}
}

func TestTopicSegments(t *testing.T) {
	if segs := Topic("a.b.c").Segments(); len(segs) != 3 || segs[2] != "c" {
		t.Errorf("expected [a b c], got %v", segs)
	}
	if segs := Topic("").Segments(); segs != nil {
		t.Errorf("expected nil, got %v", segs)
	}
	if !Topic("a.*").IsWildcard() || Topic("a.b").IsWildcard() {
		t.Error("unexpected IsWildcard result")
	}
}
