package chatclient

// DefaultRoom is the always-joined room every session starts in. It can
// never be left.
const DefaultRoom = "general"

type MessageScope int8

const (
	ScopeNone MessageScope = iota
	ScopeRoom
	ScopePrivate
)

func (s MessageScope) String() string {
	switch s {
	case ScopeNone:
		return "None"
	case ScopeRoom:
		return "Room"
	case ScopePrivate:
		return "Private"
	default:
		return "Unknown"
	}
}

// Message is one displayable chat item. System messages carry no scope.
type Message struct {
	Author string
	Text   string
	Time   string
	Scope  MessageScope
	Room   string // set when Scope == ScopeRoom
	Peer   string // set when Scope == ScopePrivate
	System bool
}

// DiscoverableRoom is a catalog entry, independent of membership.
type DiscoverableRoom struct {
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
}

// Conversation is a private-conversation list entry, keyed by peer.
type Conversation struct {
	Peer     string `json:"peer"`
	LastTime string `json:"last_time"`
}

// OnlineUser is one presence entry in server payload order. Self is tagged
// by identity comparison; the wire carries names only.
type OnlineUser struct {
	Name string
	Self bool
}
