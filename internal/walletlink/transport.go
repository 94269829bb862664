package walletlink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"xprlink/internal/domain"
)

// post sends in as JSON to a relay channel.
func (c *Client) post(ctx context.Context, channel domain.ChannelID, in any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.channelURL(channel), buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay post %s: %s", channel, resp.Status)
	}
	return nil
}

// subscription is an open WebSocket on a callback channel.
type subscription struct {
	conn    *websocket.Conn
	channel domain.ChannelID
	log     *zap.Logger
}

func (c *Client) subscribe(ctx context.Context, channel domain.ChannelID) (*subscription, error) {
	u := "ws" + strings.TrimPrefix(c.channelURL(channel), "http")
	conn, resp, err := c.dialer.DialContext(ctx, u, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("relay subscribe %s: %s: %w", channel, resp.Status, err)
		}
		return nil, fmt.Errorf("relay subscribe %s: %w", channel, err)
	}
	return &subscription{conn: conn, channel: channel, log: c.log}, nil
}

// await reads callbacks until one answers request id or ctx ends.
func (s *subscription) await(ctx context.Context, id string) (Callback, error) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// Unblocks ReadMessage below.
			_ = s.conn.Close()
		case <-stop:
		}
	}()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Callback{}, fmt.Errorf("waiting for wallet: %w", ctxErr)
			}
			return Callback{}, fmt.Errorf("read callback on %s: %w", s.channel, err)
		}
		var cb Callback
		if err := json.Unmarshal(msg, &cb); err != nil {
			s.log.Debug("ignoring undecodable callback", zap.String("channel", s.channel.String()), zap.Error(err))
			continue
		}
		if cb.ID != id {
			s.log.Debug("ignoring callback for another request", zap.String("id", cb.ID))
			continue
		}
		return cb, nil
	}
}

func (s *subscription) close() {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = s.conn.Close()
}

func (c *Client) channelURL(channel domain.ChannelID) string {
	return c.relay + "/" + url.PathEscape(channel.String())
}

// LinkURI is what a wallet opens to pick up the request posted on channel.
func LinkURI(relay string, channel domain.ChannelID) string {
	q := url.Values{}
	q.Set("relay", relay)
	q.Set("channel", channel.String())
	return "xprlink://link?" + q.Encode()
}

// ParseLinkURI is the inverse of LinkURI.
func ParseLinkURI(uri string) (relay string, channel domain.ChannelID, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "xprlink" || u.Host != "link" {
		return "", "", fmt.Errorf("not a link URI: %q", uri)
	}
	q := u.Query()
	relay, channel = q.Get("relay"), domain.ChannelID(q.Get("channel"))
	if relay == "" || channel == "" {
		return "", "", fmt.Errorf("link URI missing relay or channel: %q", uri)
	}
	return relay, channel, nil
}
