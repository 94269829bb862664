package walletlink_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"xprlink/internal/domain"
	"xprlink/internal/walletlink"
)

// fakeWallet plays the wallet side of the protocol against a real relay.
type fakeWallet struct {
	relay       string
	auth        domain.PermissionLevel
	chainID     domain.ChainID
	linkChannel domain.ChannelID
	name        string

	// appKey is the request key seen at identity time.
	appKey []byte
}

func (w *fakeWallet) dial(channel domain.ChannelID) (*websocket.Conn, error) {
	url := "ws" + strings.TrimPrefix(w.relay, "http") + "/" + channel.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	return conn, err
}

func (w *fakeWallet) next(conn *websocket.Conn) (walletlink.Request, error) {
	var req walletlink.Request
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return req, err
	}
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(msg, &req); err != nil {
		return req, err
	}
	return req, req.Verify()
}

func (w *fakeWallet) reply(channel domain.ChannelID, cb walletlink.Callback) error {
	body, err := json.Marshal(cb)
	if err != nil {
		return err
	}
	resp, err := http.Post(w.relay+"/"+channel.String(), "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("reply: %s", resp.Status)
	}
	return nil
}

// answerLogin waits for the presented prompt and answers the identity
// request. A non-empty reject makes the wallet decline.
func (w *fakeWallet) answerLogin(prompts <-chan domain.LoginPrompt, reject string) error {
	var prompt domain.LoginPrompt
	select {
	case prompt = <-prompts:
	case <-time.After(5 * time.Second):
		return fmt.Errorf("no login prompt")
	}
	_, channel, err := walletlink.ParseLinkURI(prompt.URI)
	if err != nil {
		return err
	}
	conn, err := w.dial(channel)
	if err != nil {
		return err
	}
	defer conn.Close()

	req, err := w.next(conn)
	if err != nil {
		return err
	}
	if req.Type != walletlink.RequestIdentity {
		return fmt.Errorf("want identity request, got %s", req.Type)
	}
	if req.ID != prompt.RequestID {
		return fmt.Errorf("request id %s does not match prompt %s", req.ID, prompt.RequestID)
	}
	w.appKey = req.PublicKey

	if reject != "" {
		return w.reply(req.Callback, walletlink.Callback{ID: req.ID, Error: reject, Code: 4001})
	}
	return w.reply(req.Callback, walletlink.Callback{
		ID: req.ID,
		Identity: &walletlink.IdentityProof{
			Auth:        w.auth,
			ChainID:     w.chainID,
			LinkChannel: w.linkChannel,
			WalletName:  w.name,
		},
	})
}

// serveLink handles n requests on the link channel, handing each decoded
// request to handle and posting the callback it returns (if any).
func (w *fakeWallet) serveLink(n int, handle func(walletlink.Request) (*walletlink.Callback, error)) error {
	conn, err := w.dial(w.linkChannel)
	if err != nil {
		return err
	}
	defer conn.Close()

	for i := 0; i < n; i++ {
		req, err := w.next(conn)
		if err != nil {
			return err
		}
		if w.appKey != nil && !bytes.Equal(req.PublicKey, w.appKey) {
			return fmt.Errorf("request signed by unknown key")
		}
		cb, err := handle(req)
		if err != nil {
			return err
		}
		if cb != nil {
			if err := w.reply(req.Callback, *cb); err != nil {
				return err
			}
		}
	}
	return nil
}

func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
