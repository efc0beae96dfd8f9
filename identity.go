package chatclient

import "strings"

// PlaceholderIdentity is used when no username can be resolved at startup.
// The session still works; only the "is this me" tagging suffers.
const PlaceholderIdentity = "anonymous"

// Identity is the current user's name, resolved once at startup and never
// mutated for the lifetime of the session.
type Identity string

func ResolveIdentity(username string) Identity {
	username = strings.TrimSpace(username)
	if username == "" {
		return PlaceholderIdentity
	}
	return Identity(username)
}

func (id Identity) Is(username string) bool {
	return string(id) == username
}
