package idgen

import (
	"strings"
	"testing"
)

func TestNewTimeID(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		wantPrefix string
	}{
		{
			name:       "generate record ID",
			prefix:     "gen",
			wantPrefix: "gen_",
		},
		{
			name:       "generate session ID",
			prefix:     "sess",
			wantPrefix: "sess_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTimeID(tt.prefix)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("NewTimeID() = %v, want prefix %v", got, tt.wantPrefix)
			}
			suffix := got[len(tt.wantPrefix):]
			if suffix == "" {
				t.Errorf("NewTimeID() has empty suffix: %v", got)
			}
			for _, char := range suffix {
				if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
					t.Errorf("NewTimeID() contains invalid character: %c", char)
				}
			}
		})
	}
}

func TestNewTimeID_Uniqueness(t *testing.T) {
	const iterations = 10000
	seen := make(map[string]bool)

	for i := 0; i < iterations; i++ {
		id := NewTimeID("gen")
		if seen[id] {
			t.Errorf("NewTimeID() generated duplicate ID: %v", id)
		}
		seen[id] = true
	}

	if len(seen) != iterations {
		t.Errorf("Expected %d unique IDs, got %d", iterations, len(seen))
	}
}

func TestValidateIDFormat(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		expectedPrefix string
		want           bool
	}{
		{
			name:           "valid record ID",
			id:             "gen_a3f8d2k9p1m4n7q2",
			expectedPrefix: "gen",
			want:           true,
		},
		{
			name:           "wrong prefix",
			id:             "gen_a3f8d2k9p1m4n7q2",
			expectedPrefix: "sess",
			want:           false,
		},
		{
			name:           "missing underscore",
			id:             "gena3f8d2k9p1m4n7q2",
			expectedPrefix: "gen",
			want:           false,
		},
		{
			name:           "empty suffix",
			id:             "gen_",
			expectedPrefix: "gen",
			want:           false,
		},
		{
			name:           "invalid characters (uppercase)",
			id:             "gen_A3F8D2K9P1M4N7Q2",
			expectedPrefix: "gen",
			want:           false,
		},
		{
			name:           "invalid characters (special chars)",
			id:             "gen_a3f8-d2k9-p1m4",
			expectedPrefix: "gen",
			want:           false,
		},
		{
			name:           "empty ID",
			id:             "",
			expectedPrefix: "gen",
			want:           false,
		},
		{
			name:           "only prefix",
			id:             "gen",
			expectedPrefix: "gen",
			want:           false,
		},
		{
			name:           "numbers only suffix",
			id:             "gen_123456789",
			expectedPrefix: "gen",
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateIDFormat(tt.id, tt.expectedPrefix); got != tt.want {
				t.Errorf("ValidateIDFormat(%q, %q) = %v, want %v", tt.id, tt.expectedPrefix, got, tt.want)
			}
		})
	}
}

func TestValidateIDFormat_GeneratedIDs(t *testing.T) {
	prefixes := []string{"gen", "sess", "run"}
	for _, prefix := range prefixes {
		id := NewTimeID(prefix)
		if !ValidateIDFormat(id, prefix) {
			t.Errorf("Generated ID %q failed validation with prefix %q", id, prefix)
		}
	}
}

func BenchmarkNewTimeID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NewTimeID("gen")
	}
}
