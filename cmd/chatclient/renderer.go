package main

import (
	"fmt"
	"io"
	"strings"

	chatclient "github.com/chilledoj/gochat-client"
)

// lineRenderer is the dumbest possible Renderer: one line per item on a
// writer. Real UIs bring their own implementation; the core neither knows
// nor cares.
type lineRenderer struct {
	out io.Writer
}

func (r *lineRenderer) ClearMessages() {
	fmt.Fprintln(r.out, strings.Repeat("-", 40))
}

func (r *lineRenderer) AppendMessage(msg chatclient.Message) {
	fmt.Fprintf(r.out, "[%s] %s: %s\n", msg.Time, msg.Author, msg.Text)
}

func (r *lineRenderer) ShowSystemNotice(text string) {
	fmt.Fprintf(r.out, "* %s\n", text)
}

func (r *lineRenderer) ShowOnlineUsers(users []chatclient.OnlineUser) {
	names := make([]string, 0, len(users))
	for _, u := range users {
		if u.Self {
			names = append(names, u.Name+" (me)")
			continue
		}
		names = append(names, u.Name)
	}
	fmt.Fprintf(r.out, "* online: %s\n", strings.Join(names, ", "))
}

func (r *lineRenderer) ShowJoinedRooms(rooms []string) {
	fmt.Fprintf(r.out, "* joined rooms: %s\n", strings.Join(rooms, ", "))
}

func (r *lineRenderer) ShowDiscoverableRooms(rooms []chatclient.DiscoverableRoom) {
	entries := make([]string, 0, len(rooms))
	for _, room := range rooms {
		entries = append(entries, fmt.Sprintf("%s (by %s)", room.Name, room.CreatedBy))
	}
	fmt.Fprintf(r.out, "* rooms: %s\n", strings.Join(entries, ", "))
}

func (r *lineRenderer) ShowConversations(convs []chatclient.Conversation) {
	peers := make([]string, 0, len(convs))
	for _, c := range convs {
		peers = append(peers, c.Peer)
	}
	fmt.Fprintf(r.out, "* private chats: %s\n", strings.Join(peers, ", "))
}
