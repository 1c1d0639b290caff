package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TelegramPusher delivers replies to the bot platform's sendMessage endpoint.
// The inbound webhook is acknowledged separately; a failed push must never
// change that acknowledgement.
type TelegramPusher struct {
	base   string
	token  string
	client *http.Client
}

// NewTelegramPusher constructs a pusher.  base is the API root, normally
// https://api.telegram.org; an empty token disables the pusher.
func NewTelegramPusher(base, token string) *TelegramPusher {
	return &TelegramPusher{
		base:   strings.TrimRight(base, "/"),
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a bot token was configured.
func (p *TelegramPusher) Enabled() bool {
	return p != nil && p.token != ""
}

// SendMessage posts {chat_id, text} to {base}/bot{token}/sendMessage.
func (p *TelegramPusher) SendMessage(ctx context.Context, chatID int64, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", p.base, p.token)

	payload, err := json.Marshal(map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram sendMessage status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}
