package chatclient

import "log/slog"

// SessionContext bundles everything a session mutates: who the user is,
// what they are looking at, and the four derived lists. One value is
// constructed at startup and shared by the Router and the Dispatcher; there
// are no ambient globals.
type SessionContext struct {
	Identity Identity
	State    *SessionState
	Lists    *ListSync
}

func NewSessionContext(identity Identity, emitter Emitter, slogger *slog.Logger) *SessionContext {
	return &SessionContext{
		Identity: identity,
		State:    NewSessionState(emitter, slogger),
		Lists:    NewListSync(),
	}
}
