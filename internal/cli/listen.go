package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newListenCmd() *cobra.Command {
	var name string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Stream live events from the server",
		Long: `Connect to the server's websocket endpoint and stream events in real-time.

Events include:
  - loggedIn: Login accepted, includes roster and stats
  - joined: Online roster changed
  - gameInvite: Another player started a match with you
  - startGame: Match started, includes your board
  - updateMatrix: Board updated after a move
  - turnChange: Turn passed to the named player
  - gameOver: Match resolved by win
  - opponentLeft: Match resolved by forfeit

With --name, logs in under that name so the connection appears in the
roster and can receive invites.

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(name, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name to log in with")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// WireEvent is a received server event with a local timestamp
type WireEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func streamEvents(name string, jsonOutput bool) error {
	url := websocketURL(cfg.ServerURL) + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if name != "" {
		login := map[string]any{
			"event": "login",
			"data":  map[string]string{"name": name},
		}
		if err := conn.WriteJSON(login); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}

	if !jsonOutput {
		fmt.Printf("Connected to %s\n", url)
	}

	// Close the connection on interrupt so the read loop unblocks
	interrupted := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(interrupted)
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		_ = conn.Close()
	}()

	for {
		var evt struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&evt); err != nil {
			select {
			case <-interrupted:
				if !jsonOutput {
					fmt.Println("\nDisconnected")
				}
				return nil
			default:
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printEvent(evt.Event, evt.Data, jsonOutput)
	}
}

func printEvent(event string, data json.RawMessage, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		jsonData, _ := json.Marshal(WireEvent{
			Time:  now,
			Event: event,
			Data:  data,
		})
		fmt.Println(string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	display := string(data)
	if len(display) > 100 {
		display = display[:100] + "..."
	}
	fmt.Printf("[%s] %s: %s\n", timestamp, event, display)
}

func websocketURL(serverURL string) string {
	url := strings.TrimSuffix(serverURL, "/")
	switch {
	case strings.HasPrefix(url, "https://"):
		return "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		return "ws://" + strings.TrimPrefix(url, "http://")
	default:
		return url
	}
}
