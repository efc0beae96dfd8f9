package chatclient

import (
	"fmt"
	"log/slog"
)

// Router applies inbound events to the session and the renderer. Snapshot
// events replace a derived list wholesale; message events are filtered
// against the active view and dropped, not buffered, when they miss — the
// server is the durable history store and a later view switch refetches.
type Router struct {
	session  *SessionContext
	renderer Renderer

	Slogger *slog.Logger
}

func NewRouter(session *SessionContext, renderer Renderer, slogger *slog.Logger) *Router {
	if slogger == nil {
		slogger = slog.Default()
	}
	return &Router{
		session:  session,
		renderer: renderer,
		Slogger:  slogger,
	}
}

// HandleRaw decodes one wire frame and routes it.
func (rt *Router) HandleRaw(raw []byte) error {
	ev, err := ParseServerEvent(raw)
	if err != nil {
		return err
	}
	rt.Handle(ev)
	return nil
}

// Handle routes one decoded event.
func (rt *Router) Handle(ev ServerEvent) {
	switch ev := ev.(type) {
	case OnlineUsersEvent:
		rt.session.Lists.ReplaceOnlineUsers(ev.Users)
		rt.renderer.ShowOnlineUsers(rt.taggedUsers())
	case ChatMessageEvent:
		rt.handleRoomMessage(ev)
	case PrivateMessageEvent:
		rt.handlePrivateMessage(ev)
	case RoomsListEvent:
		rt.session.Lists.ReplaceCatalog(ev.Rooms)
		rt.renderer.ShowDiscoverableRooms(rt.session.Lists.Catalog())
	case JoinedRoomsEvent:
		rt.session.Lists.ReplaceJoinedRooms(ev.Rooms)
		rt.renderer.ShowJoinedRooms(rt.session.Lists.JoinedRooms())
	case RoomHistoryEvent:
		rt.handleRoomHistory(ev)
	case PrivateHistoryEvent:
		rt.handlePrivateHistory(ev)
	case PrivateChatsEvent:
		rt.session.Lists.ReplaceConversations(ev.Chats)
		rt.renderer.ShowConversations(rt.session.Lists.Conversations())
	case SystemMessageEvent:
		// System messages always display, regardless of view.
		rt.renderer.ShowSystemNotice(ev.Text)
	}
}

func (rt *Router) taggedUsers() []OnlineUser {
	names := rt.session.Lists.OnlineUsers()
	users := make([]OnlineUser, 0, len(names))
	for _, name := range names {
		users = append(users, OnlineUser{
			Name: name,
			Self: rt.session.Identity.Is(name),
		})
	}
	return users
}

func (rt *Router) handleRoomMessage(ev ChatMessageEvent) {
	view := rt.session.State.View()
	if view.Kind != RoomView || view.Room != ev.Room {
		rt.Slogger.Debug("dropping message for inactive room", "room", ev.Room)
		return
	}
	rt.renderer.AppendMessage(Message{
		Author: ev.User,
		Text:   ev.Text,
		Time:   ev.Time,
		Scope:  ScopeRoom,
		Room:   ev.Room,
	})
}

func (rt *Router) handlePrivateMessage(ev PrivateMessageEvent) {
	peer := rt.counterpart(ev)
	if !rt.session.Identity.Is(peer) {
		if rt.session.Lists.PromoteConversation(peer) {
			rt.renderer.ShowConversations(rt.session.Lists.Conversations())
		}
	}

	view := rt.session.State.View()
	if view.Kind == PrivateView && view.Peer == peer {
		rt.renderer.AppendMessage(Message{
			Author: ev.From,
			Text:   ev.Text,
			Time:   ev.Time,
			Scope:  ScopePrivate,
			Peer:   peer,
		})
		return
	}

	// Undisplayed private traffic still surfaces as a notice so it is
	// never silently lost from the user's attention.
	rt.Slogger.Debug("private message outside active view", "from", ev.From)
	rt.renderer.ShowSystemNotice(fmt.Sprintf("new private message from %s: %s", ev.From, ev.Text))
}

// counterpart is the other participant from the current user's perspective.
func (rt *Router) counterpart(ev PrivateMessageEvent) string {
	if rt.session.Identity.Is(ev.From) {
		return ev.To
	}
	return ev.From
}

func (rt *Router) handleRoomHistory(ev RoomHistoryEvent) {
	rt.session.State.SetRoom(ev.Room)
	rt.renderer.ClearMessages()
	for _, item := range ev.History {
		rt.renderer.AppendMessage(Message{
			Author: item.User,
			Text:   item.Text,
			Time:   item.Time,
			Scope:  ScopeRoom,
			Room:   ev.Room,
		})
	}
}

func (rt *Router) handlePrivateHistory(ev PrivateHistoryEvent) {
	rt.renderer.ClearMessages()
	for _, item := range ev.History {
		rt.renderer.AppendMessage(Message{
			Author: item.From,
			Text:   item.Text,
			Time:   item.Time,
			Scope:  ScopePrivate,
			Peer:   rt.counterpart(item),
		})
	}
}
