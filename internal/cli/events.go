package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

func newWatchCmd() *cobra.Command {
	var (
		jsonOutput bool
		roomID     string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live events over the websocket",
		Long: `Connect to the server's websocket endpoint and stream events.

Without --room the stream carries lobby events (room listings). With
--room the connection joins that room as an observer and streams its
match events too.

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(roomID, name, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().StringVar(&roomID, "room", "", "Room to observe")
	cmd.Flags().StringVar(&name, "name", "watcher", "Display name for the connection")

	return cmd
}

func streamEvents(roomID, name string, jsonOutput bool) error {
	wsURL, err := websocketURL(cfg.ServerURL, name)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if roomID != "" {
		join := model.Command{
			Kind:     model.CmdJoinRoom,
			JoinRoom: &model.JoinRoomCommand{RoomID: model.RoomID(roomID)},
		}
		if err := conn.WriteJSON(join); err != nil {
			return fmt.Errorf("failed to join room: %w", err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	fmt.Fprintf(os.Stderr, "connected to %s\n", wsURL)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("connection closed: %w", err)
		}
		printEvent(data, jsonOutput)
	}
}

func printEvent(data []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(string(data))
		return
	}
	var event model.Event
	if err := json.Unmarshal(data, &event); err != nil {
		fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), string(data))
		return
	}
	payload, _ := json.Marshal(event.Payload)
	fmt.Printf("[%s] %-20s %s\n",
		event.Timestamp.Format("15:04:05"), event.Type, string(payload))
}

func websocketURL(serverURL, name string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
