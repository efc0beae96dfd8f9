package chatclient

// Renderer is the display surface the core drives. The core owns what is
// shown and when; markup, widgets and styling live entirely behind this
// interface. cmd/chatclient ships a line-printing implementation.
type Renderer interface {
	// ClearMessages empties the message pane. Always called before a
	// history snapshot is rendered so old and new content never interleave.
	ClearMessages()
	AppendMessage(msg Message)
	// ShowSystemNotice renders text through the system-message path.
	ShowSystemNotice(text string)
	ShowOnlineUsers(users []OnlineUser)
	ShowJoinedRooms(rooms []string)
	ShowDiscoverableRooms(rooms []DiscoverableRoom)
	ShowConversations(convs []Conversation)
}
