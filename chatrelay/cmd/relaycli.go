// Command-line chat client, mostly for poking at a running relay.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"chatrelay/chatrelay/services/ai"
	"chatrelay/chatrelay/sources/psql/models"
	"chatrelay/chatrelay/utils/color"
	httputils "chatrelay/chatrelay/utils/http"
	"chatrelay/chatrelay/utils/types"

	"github.com/coder/websocket"
)

func main() {
	server := flag.String("server", "http://localhost:4000", "relay server base URL")
	room := flag.Int("room", 0, "room id to join")
	username := flag.String("user", "", "display name to chat as")
	flag.Parse()

	if *room == 0 || *username == "" {
		fmt.Println("usage: relaycli -room <id> -user <name> [-server <url>]")
		os.Exit(1)
	}

	ctx := context.Background()

	var user models.User
	err := httputils.PostJSON(ctx, *server+"/login", types.LoginRequest{Username: *username}, &user)
	if err != nil {
		fmt.Println(color.ColorError("login failed: " + err.Error()))
		os.Exit(1)
	}
	fmt.Println(color.ColorInfo(fmt.Sprintf("logged in as %s (id=%d)", user.Username, user.ID)))

	conn, _, err := websocket.Dial(ctx, *server+"/ws", nil)
	if err != nil {
		fmt.Println(color.ColorError("connect failed: " + err.Error()))
		os.Exit(1)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	if err := send(ctx, conn, types.EventJoinRoom, types.JoinRoomEvent{RoomID: *room}); err != nil {
		fmt.Println(color.ColorError("join failed: " + err.Error()))
		os.Exit(1)
	}
	fmt.Println(color.ColorInfo(fmt.Sprintf("joined room %d, type away ('exit' to quit)", *room)))

	go func() {
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				fmt.Println(color.ColorWarning("connection closed"))
				os.Exit(0)
			}
			var evt struct {
				Type string                `json:"type"`
				Data types.ChatMessageView `json:"data"`
			}
			if err := json.Unmarshal(data, &evt); err != nil || evt.Type != types.EventChatMessage {
				continue
			}
			line := fmt.Sprintf("%s: %s", evt.Data.Username, evt.Data.Content)
			if evt.Data.Username == ai.AIUsername {
				fmt.Println(color.ColorAI(line))
			} else {
				fmt.Println(color.ColorPeer(line))
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.ColorPrompt("> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}
		err := send(ctx, conn, types.EventChatMessage, types.ChatMessageEvent{
			RoomID:  *room,
			UserID:  user.ID,
			Content: line,
		})
		if err != nil {
			fmt.Println(color.ColorError("send failed: " + err.Error()))
			break
		}
	}
}

func send(ctx context.Context, conn *websocket.Conn, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	evt := types.InboundEvent{Type: eventType, Data: data}
	out, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, out)
}
