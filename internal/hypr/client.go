// Package hypr talks to a running Hyprland compositor over its control
// socket: one plain-text command per connection, reply read to EOF.
package hypr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/NextPr0gram/dusky/internal/config"
)

const (
	// envSocket overrides socket resolution entirely. Used by tests and
	// useful for pointing dusky at a nested compositor instance.
	envSocket = "DUSKY_SOCKET"

	// envSignature identifies the running compositor instance. Hyprland
	// exports it into every client's environment.
	envSignature = "HYPRLAND_INSTANCE_SIGNATURE"

	// socketName is the request socket's file name inside the instance dir.
	socketName = ".socket.sock"
)

// SocketPath resolves the compositor control socket. DUSKY_SOCKET wins when
// set; otherwise the socket lives in the runtime dir keyed by the instance
// signature, with the legacy /tmp layout as fallback for older compositors.
func SocketPath() (string, error) {
	if path := os.Getenv(envSocket); path != "" {
		return path, nil
	}

	sig := os.Getenv(envSignature)
	if sig == "" {
		return "", errors.New("HYPRLAND_INSTANCE_SIGNATURE is not set (not running under Hyprland?)")
	}

	if xdg.RuntimeDir != "" {
		candidate := filepath.Join(xdg.RuntimeDir, "hypr", sig, socketName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return filepath.Join("/tmp", "hypr", sig, socketName), nil
}

// Client issues one-shot requests to the compositor. Each request opens a
// fresh connection, so a Client is safe to share and holds no resources
// between calls.
type Client struct {
	socket string
}

// NewClient resolves the control socket and returns a client for it.
func NewClient() (*Client, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}
	return NewClientWithSocket(path), nil
}

// NewClientWithSocket returns a client bound to a specific socket path.
func NewClientWithSocket(path string) *Client {
	return &Client{socket: path}
}

// request sends one command and reads the full reply. The compositor
// answers a single request per connection and closes its end when done.
func (c *Client) request(ctx context.Context, command string) ([]byte, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to compositor socket %s: %w", c.socket, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(config.RequestTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set socket deadline: %w", err)
	}

	if _, err := conn.Write([]byte(command)); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if uc, ok := conn.(*net.UnixConn); ok {
		// Half-close marks the end of the request so the reply can be read
		// to EOF.
		if err := uc.CloseWrite(); err != nil {
			return nil, fmt.Errorf("failed to finish request: %w", err)
		}
	}

	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read compositor reply: %w", err)
	}
	return reply, nil
}

// Monitors returns the compositor's current monitor state.
func (c *Client) Monitors(ctx context.Context) ([]Monitor, error) {
	reply, err := c.request(ctx, "j/monitors")
	if err != nil {
		return nil, err
	}
	var monitors []Monitor
	if err := json.Unmarshal(reply, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitor state: %w", err)
	}
	return monitors, nil
}

// MonitorByName returns the monitor with the given name. A name the
// compositor does not report is an error.
func (c *Client) MonitorByName(ctx context.Context, name string) (*Monitor, error) {
	monitors, err := c.Monitors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range monitors {
		if monitors[i].Name == name {
			return &monitors[i], nil
		}
	}
	return nil, fmt.Errorf("monitor %q not found", name)
}

// FocusedMonitor returns the monitor holding input focus, or the first
// reported monitor when focus is in flux.
func (c *Client) FocusedMonitor(ctx context.Context) (*Monitor, error) {
	monitors, err := c.Monitors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range monitors {
		if monitors[i].Focused {
			return &monitors[i], nil
		}
	}
	if len(monitors) > 0 {
		return &monitors[0], nil
	}
	return nil, errors.New("compositor reports no monitors")
}

// Keyword applies a config keyword to the running compositor, e.g. a
// monitor rule. Anything but an "ok" reply is a rejection.
func (c *Client) Keyword(ctx context.Context, key, value string) error {
	reply, err := c.request(ctx, fmt.Sprintf("keyword %s %s", key, value))
	if err != nil {
		return err
	}
	if body := strings.TrimSpace(string(reply)); body != "ok" {
		return fmt.Errorf("compositor rejected keyword %s %s: %s", key, value, body)
	}
	return nil
}

// Notification icons understood by the compositor.
const (
	NotifyIconWarning = 0
	NotifyIconInfo    = 1
	NotifyIconError   = 3
	NotifyIconOK      = 5
)

// Notify pops an on-screen compositor notification. The message is a single
// line; embedded newlines are flattened.
func (c *Client) Notify(ctx context.Context, icon int, timeout time.Duration, message string) error {
	message = strings.ReplaceAll(message, "\n", " ")
	reply, err := c.request(ctx, fmt.Sprintf("notify %d %d 0 %s", icon, timeout.Milliseconds(), message))
	if err != nil {
		return err
	}
	if body := strings.TrimSpace(string(reply)); body != "ok" {
		return fmt.Errorf("compositor rejected notification: %s", body)
	}
	return nil
}
