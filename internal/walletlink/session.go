package walletlink

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"xprlink/internal/crypto"
	"xprlink/internal/domain"
)

// linkState is shared by the Link and Session handles of one linked wallet.
type linkState struct {
	mu      sync.Mutex
	stored  domain.StoredSession
	removed bool
}

// Link is the handle used to drop a linked session.
type Link struct {
	client *Client
	state  *linkState
}

// Session signs transactions through the linked wallet.
type Session struct {
	client *Client
	state  *linkState
}

func (c *Client) bind(stored domain.StoredSession) (*Link, *Session) {
	st := &linkState{stored: stored}
	return &Link{client: c, state: st}, &Session{client: c, state: st}
}

// Auth returns the account/permission the wallet authorized.
func (s *Session) Auth() domain.PermissionLevel {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.stored.Auth
}

// ChainID returns the chain the session is bound to.
func (s *Session) ChainID() domain.ChainID {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.stored.ChainID
}

// WalletName is the wallet's self-reported name, if any.
func (s *Session) WalletName() string {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.stored.WalletName
}

// RequestKey returns the public half of the session's request key.
func (s *Session) RequestKey() domain.Ed25519Public {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.stored.RequestKey.Public()
}

// Transact asks the wallet to sign args as the session's auth and, with
// opts.Broadcast, to push the transaction. A wallet refusal is returned as a
// *RejectedError.
func (s *Session) Transact(
	ctx context.Context,
	args domain.TransactArgs,
	opts domain.TransactOptions,
) (domain.TransactResult, error) {
	c := s.client
	requestID := uuid.NewString()
	callbackChannel := domain.ChannelID(uuid.NewString())

	s.state.mu.Lock()
	if s.state.removed {
		s.state.mu.Unlock()
		return domain.TransactResult{}, ErrSessionRemoved
	}
	stored := s.state.stored
	req, err := newRequest(RequestTransact, requestID, stored.AppID, stored.ChainID,
		callbackChannel, c.now().Unix(), TransactPayload{
			Auth:        stored.Auth,
			Transaction: args,
			Broadcast:   opts.Broadcast,
		})
	if err == nil {
		err = req.sign(stored.RequestKey)
	}
	s.state.mu.Unlock()
	if err != nil {
		return domain.TransactResult{}, err
	}

	sub, err := c.subscribe(ctx, callbackChannel)
	if err != nil {
		return domain.TransactResult{}, err
	}
	defer sub.close()

	if err := c.post(ctx, stored.LinkChannel, req); err != nil {
		return domain.TransactResult{}, fmt.Errorf("send transact request: %w", err)
	}
	c.log.Debug("transact request sent",
		zap.String("request_id", requestID),
		zap.Int("actions", len(args.Actions)),
		zap.Bool("broadcast", opts.Broadcast),
	)

	cb, err := sub.await(ctx, requestID)
	if err != nil {
		return domain.TransactResult{}, err
	}
	if cb.Error != "" {
		return domain.TransactResult{}, &RejectedError{Code: cb.Code, Reason: cb.Error}
	}
	if cb.Result == nil {
		return domain.TransactResult{}, fmt.Errorf("%w: no transaction result", ErrMalformedCallback)
	}
	return *cb.Result, nil
}

// RemoveSession notifies the wallet (best effort), forgets the persisted
// session and wipes the request key. Only the store error is returned.
func (l *Link) RemoveSession(
	ctx context.Context,
	appID domain.AppIdentifier,
	auth domain.PermissionLevel,
	chainID domain.ChainID,
) error {
	c := l.client

	l.state.mu.Lock()
	stored := l.state.stored
	alreadyRemoved := l.state.removed
	var req Request
	var err error
	if !alreadyRemoved {
		req, err = newRequest(RequestRemoveSession, uuid.NewString(), appID, chainID, "",
			c.now().Unix(), RemoveSessionPayload{Auth: auth})
		if err == nil {
			err = req.sign(stored.RequestKey)
		}
		l.state.removed = true
		crypto.WipeKey(&l.state.stored.RequestKey)
	}
	l.state.mu.Unlock()

	if !alreadyRemoved {
		if err == nil {
			err = c.post(ctx, stored.LinkChannel, req)
		}
		if err != nil {
			c.log.Warn("could not notify wallet of session removal",
				zap.String("auth", auth.String()), zap.Error(err))
		}
		crypto.WipeKey(&stored.RequestKey)
	}

	if err := c.store.DeleteLinkSession(appID, chainID); err != nil {
		return fmt.Errorf("delete stored session: %w", err)
	}
	return nil
}

var (
	_ domain.Link    = (*Link)(nil)
	_ domain.Session = (*Session)(nil)
)
