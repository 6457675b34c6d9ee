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
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live results over websocket",
		Long: `Connect to the live result endpoint and stream events in real-time.

Events include:
  - INFO: connection greeting, carries the latest published result
  - RESULT: a freshly published two-digit result

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchResults(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// liveEvent is the wire shape pushed by the server
type liveEvent struct {
	Type      string     `json:"type"`
	Message   string     `json:"message,omitempty"`
	Result    string     `json:"result,omitempty"`
	EmittedAt *time.Time `json:"emitted_at,omitempty"`
}

func watchResults(jsonOutput bool) error {
	wsURL, err := websocketURL(cfg.ServerURL)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		for {
			var event liveEvent
			if err := conn.ReadJSON(&event); err != nil {
				done <- err
				return
			}
			printEvent(event, jsonOutput)
		}
	}()

	select {
	case <-sigCh:
		// Ask the server to close the connection cleanly
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		select {
		case <-done:
		case <-time.After(time.Second):
		}
		return nil
	case err := <-done:
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}
		return err
	}
}

// websocketURL converts the configured server URL to the ws endpoint
func websocketURL(serverURL string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/live-result"
	return u.String(), nil
}

func printEvent(event liveEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(event)
		fmt.Println(string(data))
		return
	}

	switch event.Type {
	case "INFO":
		if event.Result != "" {
			fmt.Printf("Connected. Latest result: %s\n", event.Result)
		} else {
			fmt.Println("Connected. No result published yet.")
		}
	case "RESULT":
		ts := ""
		if event.EmittedAt != nil {
			ts = event.EmittedAt.Local().Format("15:04:05") + " "
		}
		fmt.Printf("%sResult: %s\n", ts, event.Result)
	default:
		data, _ := json.Marshal(event)
		fmt.Println(string(data))
	}
}
