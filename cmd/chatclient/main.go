package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	chatclient "github.com/chilledoj/gochat-client"
)

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse flags: %v\n", err)
		os.Exit(1)
	}

	txtHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})
	slogger := slog.New(txtHandler)
	slog.SetDefault(slogger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	identity := chatclient.ResolveIdentity(cfg.Username)

	transport, err := chatclient.Dial(ctx, cfg.ServerURL, identity, slogger)
	if err != nil {
		slogger.Error("connect failed", "url", cfg.ServerURL, "err", err)
		os.Exit(1)
	}

	client := chatclient.NewClient(ctx, transport, chatclient.Options{
		Identity: identity,
		Renderer: &lineRenderer{out: os.Stdout},
		Slogger:  slogger,
	})

	go func() {
		client.Start()
		cancel()
	}()
	go readActions(ctx, client)

	<-ctx.Done()
	slogger.Info("shutting down")
	client.Stop()
}

// readActions turns stdin lines into user actions. Plain text sends to the
// active view; slash commands drive the rest.
func readActions(ctx context.Context, client *chatclient.Client) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		client.Do(parseAction(line))
	}
}

func parseAction(line string) chatclient.UserAction {
	if !strings.HasPrefix(line, "/") {
		return chatclient.SendMessageAction{Text: line}
	}
	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "create":
		return chatclient.CreateRoomAction{Name: arg}
	case "join":
		return chatclient.JoinRoomAction{Name: arg}
	case "leave":
		return chatclient.LeaveRoomAction{Name: arg}
	case "switch":
		return chatclient.SwitchRoomAction{Name: arg}
	case "pm":
		return chatclient.StartPrivateChatAction{Peer: arg}
	case "back":
		return chatclient.ExitPrivateChatAction{}
	default:
		// Unknown command, treat the whole line as text.
		return chatclient.SendMessageAction{Text: line}
	}
}
