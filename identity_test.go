package chatclient

import "testing"

func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     Identity
	}{
		{"plain name", "alice", "alice"},
		{"surrounding whitespace", "  alice \t", "alice"},
		{"empty falls back to placeholder", "", PlaceholderIdentity},
		{"whitespace only falls back to placeholder", "   ", PlaceholderIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveIdentity(tt.username); got != tt.want {
				t.Errorf("ResolveIdentity(%q) = %q, want %q", tt.username, got, tt.want)
			}
		})
	}
}

func TestIdentity_Is(t *testing.T) {
	id := Identity("alice")
	if !id.Is("alice") {
		t.Error("Is(alice) = false, want true")
	}
	if id.Is("Alice") {
		t.Error("Is(Alice) = true, want false; comparison is exact")
	}
}
