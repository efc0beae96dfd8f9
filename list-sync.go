package chatclient

import "slices"

// ListSync owns the four derived membership views. Snapshot events replace
// a list wholesale, never diff it. Written only from the client event loop;
// read-only everywhere else, so no locking.
type ListSync struct {
	onlineUsers   []string
	joinedRooms   []string
	catalog       []DiscoverableRoom
	conversations []Conversation
}

func NewListSync() *ListSync {
	return &ListSync{
		joinedRooms: []string{DefaultRoom},
	}
}

// ReplaceOnlineUsers swaps the presence list. Payload order is preserved;
// no client-side ordering is computed.
func (ls *ListSync) ReplaceOnlineUsers(users []string) {
	ls.onlineUsers = slices.Clone(users)
}

func (ls *ListSync) OnlineUsers() []string {
	return ls.onlineUsers
}

// ReplaceJoinedRooms swaps the joined set. The default room is re-inserted
// if the payload omits it; it can never be removed.
func (ls *ListSync) ReplaceJoinedRooms(rooms []string) {
	rooms = slices.Clone(rooms)
	if !slices.Contains(rooms, DefaultRoom) {
		rooms = append([]string{DefaultRoom}, rooms...)
	}
	ls.joinedRooms = rooms
}

func (ls *ListSync) JoinedRooms() []string {
	return ls.joinedRooms
}

func (ls *ListSync) ReplaceCatalog(rooms []DiscoverableRoom) {
	ls.catalog = slices.Clone(rooms)
}

func (ls *ListSync) Catalog() []DiscoverableRoom {
	return ls.catalog
}

// PromoteConversation front-inserts a locally observed peer so a brand-new
// incoming private message is visible before the next catalog snapshot.
// Idempotent: an already-listed peer keeps its position. Reports whether
// the list changed.
func (ls *ListSync) PromoteConversation(peer string) bool {
	for _, c := range ls.conversations {
		if c.Peer == peer {
			return false
		}
	}
	ls.conversations = append([]Conversation{{Peer: peer}}, ls.conversations...)
	return true
}

// ReplaceConversations discards any locally promoted entries in favour of
// the server's catalog, already ordered by last message time descending.
func (ls *ListSync) ReplaceConversations(convs []Conversation) {
	ls.conversations = slices.Clone(convs)
}

func (ls *ListSync) Conversations() []Conversation {
	return ls.conversations
}
