package walletlink

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"xprlink/internal/crypto"
	"xprlink/internal/domain"
)

// Config holds the collaborators a Client needs.
type Config struct {
	RelayURL  string              // e.g. http://127.0.0.1:8080
	Store     domain.SessionStore // where linked sessions are persisted
	Presenter domain.Presenter    // shows the login URI; optional
	HTTP      *http.Client        // optional; defaults to http.DefaultClient
	Dialer    *websocket.Dialer   // optional; defaults to websocket.DefaultDialer
	Logger    *zap.Logger         // optional
	Now       func() time.Time    // optional; for tests
}

// Client opens wallet sessions through a relay.
type Client struct {
	relay     string
	store     domain.SessionStore
	presenter domain.Presenter
	http      *http.Client
	dialer    *websocket.Dialer
	log       *zap.Logger
	now       func() time.Time
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	relay := strings.TrimRight(cfg.RelayURL, "/")
	u, err := url.Parse(relay)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid relay URL %q", cfg.RelayURL)
	}
	if cfg.Store == nil {
		return nil, errors.New("walletlink: session store required")
	}
	c := &Client{
		relay:     relay,
		store:     cfg.Store,
		presenter: cfg.Presenter,
		http:      cfg.HTTP,
		dialer:    cfg.Dialer,
		log:       cfg.Logger,
		now:       cfg.Now,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.dialer == nil {
		c.dialer = websocket.DefaultDialer
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.log = c.log.Named("walletlink")
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// OpenSession restores the persisted session for (RequestAccount, ChainID)
// when opts.RestoreSession is set, and otherwise runs the identity handshake
// with a wallet.
func (c *Client) OpenSession(ctx context.Context, opts domain.LinkOptions) (domain.Link, domain.Session, error) {
	if opts.RequestAccount == "" || opts.ChainID == "" {
		return nil, nil, errors.New("walletlink: request account and chain id are required")
	}
	if opts.RestoreSession {
		return c.restore(opts)
	}
	return c.login(ctx, opts)
}

func (c *Client) restore(opts domain.LinkOptions) (domain.Link, domain.Session, error) {
	stored, ok, err := c.store.LoadLinkSession(opts.RequestAccount, opts.ChainID)
	if err != nil {
		return nil, nil, fmt.Errorf("load stored session: %w", err)
	}
	if !ok {
		return nil, nil, ErrNoStoredSession
	}
	c.log.Debug("restored session",
		zap.String("auth", stored.Auth.String()),
		zap.String("link_channel", stored.LinkChannel.String()),
	)
	link, sess := c.bind(stored)
	return link, sess, nil
}

// login performs the identity handshake:
//  1. generate a request key and fresh request/callback channels;
//  2. subscribe to the callback channel before anything is posted;
//  3. post the signed identity request and present its URI;
//  4. wait for the wallet's identity proof, then persist the session.
func (c *Client) login(ctx context.Context, opts domain.LinkOptions) (domain.Link, domain.Session, error) {
	key, pub, err := crypto.GenerateEd25519()
	if err != nil {
		return nil, nil, fmt.Errorf("generate request key: %w", err)
	}
	requestChannel := domain.ChannelID(uuid.NewString())
	callbackChannel := domain.ChannelID(uuid.NewString())
	requestID := uuid.NewString()

	sub, err := c.subscribe(ctx, callbackChannel)
	if err != nil {
		crypto.WipeKey(&key)
		return nil, nil, err
	}
	defer sub.close()

	req, err := newRequest(RequestIdentity, requestID, opts.RequestAccount, opts.ChainID,
		callbackChannel, c.now().Unix(), IdentityPayload{Selector: opts.Selector, Endpoints: opts.Endpoints})
	if err == nil {
		err = req.sign(key)
	}
	if err == nil {
		err = c.post(ctx, requestChannel, req)
	}
	if err != nil {
		crypto.WipeKey(&key)
		return nil, nil, fmt.Errorf("send identity request: %w", err)
	}

	prompt := domain.LoginPrompt{
		Selector:  opts.Selector,
		URI:       LinkURI(c.relay, requestChannel),
		ChainID:   opts.ChainID,
		RequestID: requestID,
	}
	if c.presenter != nil {
		if err := c.presenter.PresentLogin(prompt); err != nil {
			crypto.WipeKey(&key)
			return nil, nil, fmt.Errorf("present login: %w", err)
		}
	}
	c.log.Info("waiting for wallet",
		zap.String("request_id", requestID),
		zap.String("key_fingerprint", crypto.Fingerprint(pub)),
	)

	cb, err := sub.await(ctx, requestID)
	if err == nil {
		err = checkIdentity(cb, opts.ChainID)
	}
	if err != nil {
		crypto.WipeKey(&key)
		return nil, nil, err
	}

	stored := domain.StoredSession{
		AppID:       opts.RequestAccount,
		ChainID:     opts.ChainID,
		Auth:        cb.Identity.Auth,
		LinkChannel: cb.Identity.LinkChannel,
		WalletName:  cb.Identity.WalletName,
		Endpoints:   opts.Endpoints,
		RequestKey:  key,
		CreatedUTC:  c.now().Unix(),
	}
	if err := c.store.SaveLinkSession(stored); err != nil {
		crypto.WipeKey(&key)
		return nil, nil, fmt.Errorf("persist session: %w", err)
	}
	c.log.Info("wallet linked",
		zap.String("auth", stored.Auth.String()),
		zap.String("wallet", stored.WalletName),
	)
	link, sess := c.bind(stored)
	return link, sess, nil
}

func checkIdentity(cb Callback, chainID domain.ChainID) error {
	if cb.Error != "" {
		return &RejectedError{Code: cb.Code, Reason: cb.Error}
	}
	id := cb.Identity
	if id == nil || id.Auth.IsZero() || id.Auth.Permission == "" || id.LinkChannel == "" {
		return fmt.Errorf("%w: identity proof incomplete", ErrMalformedCallback)
	}
	if id.ChainID != chainID {
		return fmt.Errorf("%w: want %s, got %s", ErrChainMismatch, chainID, id.ChainID)
	}
	return nil
}

var _ domain.WalletConnector = (*Client)(nil)
