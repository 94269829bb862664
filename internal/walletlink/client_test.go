package walletlink_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xprlink/internal/domain"
	"xprlink/internal/relay"
	sessionsvc "xprlink/internal/services/session"
	"xprlink/internal/store"
	"xprlink/internal/walletlink"
)

const testChain = domain.ChainID("384da888112027f0321850a169f737c33e53b388aad48b5adace4bab97f437e0")

type harness struct {
	relayURL string
	store    *store.SessionFileStore
	prompts  chan domain.LoginPrompt
	client   *walletlink.Client
	wallet   *fakeWallet
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := httptest.NewServer(relay.NewServer(relay.Config{}).Handler())
	t.Cleanup(srv.Close)

	h := &harness{
		relayURL: srv.URL,
		store:    store.NewSessionFileStore(t.TempDir(), ""),
		prompts:  make(chan domain.LoginPrompt, 1),
	}
	client, err := walletlink.New(walletlink.Config{
		RelayURL: srv.URL,
		Store:    h.store,
		Presenter: walletlink.PresenterFunc(func(p domain.LoginPrompt) error {
			h.prompts <- p
			return nil
		}),
	})
	require.NoError(t, err)
	h.client = client
	h.wallet = &fakeWallet{
		relay:       srv.URL,
		auth:        domain.PermissionLevel{Actor: "alice", Permission: "active"},
		chainID:     testChain,
		linkChannel: "link-alice",
		name:        "WebAuth",
	}
	return h
}

func linkOptions(restore bool) domain.LinkOptions {
	return domain.LinkOptions{
		Endpoints:      []string{"https://proton.greymass.com"},
		ChainID:        testChain,
		RestoreSession: restore,
		RequestAccount: "taskly",
		Selector:       domain.SelectorOptions{AppName: "Tasklyy"},
	}
}

// login runs OpenSession against the fake wallet and returns the handles.
func (h *harness) login(t *testing.T) (domain.Link, domain.Session) {
	t.Helper()
	walletErr := make(chan error, 1)
	go func() { walletErr <- h.wallet.answerLogin(h.prompts, "") }()

	ctx, cancel := withTimeout(10 * time.Second)
	defer cancel()
	link, sess, err := h.client.OpenSession(ctx, linkOptions(false))
	require.NoError(t, err)
	require.NoError(t, <-walletErr)
	return link, sess
}

func TestNew_Validates(t *testing.T) {
	_, err := walletlink.New(walletlink.Config{RelayURL: "ftp://relay", Store: store.NewSessionFileStore(t.TempDir(), "")})
	assert.Error(t, err)

	_, err = walletlink.New(walletlink.Config{RelayURL: "http://127.0.0.1:8080"})
	assert.Error(t, err)
}

func TestLogin_HandshakePersistsSession(t *testing.T) {
	h := newHarness(t)
	_, sess := h.login(t)

	assert.Equal(t, h.wallet.auth, sess.Auth())
	assert.Equal(t, testChain, sess.ChainID())

	stored, ok, err := h.store.LoadLinkSession("taskly", testChain)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.ChannelID("link-alice"), stored.LinkChannel)
	assert.Equal(t, "WebAuth", stored.WalletName)
	pub := stored.RequestKey.Public()
	assert.Equal(t, h.wallet.appKey, pub[:], "stored key must be the one that signed the request")
}

func TestLogin_Rejected(t *testing.T) {
	h := newHarness(t)
	walletErr := make(chan error, 1)
	go func() { walletErr <- h.wallet.answerLogin(h.prompts, "user declined") }()

	ctx, cancel := withTimeout(10 * time.Second)
	defer cancel()
	_, _, err := h.client.OpenSession(ctx, linkOptions(false))
	require.NoError(t, <-walletErr)

	require.Error(t, err)
	assert.True(t, errors.Is(err, walletlink.ErrRejected))
	var rejected *walletlink.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 4001, rejected.Code)

	_, ok, err := h.store.LoadLinkSession("taskly", testChain)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_ChainMismatch(t *testing.T) {
	h := newHarness(t)
	h.wallet.chainID = "some-other-chain"
	walletErr := make(chan error, 1)
	go func() { walletErr <- h.wallet.answerLogin(h.prompts, "") }()

	ctx, cancel := withTimeout(10 * time.Second)
	defer cancel()
	_, _, err := h.client.OpenSession(ctx, linkOptions(false))
	require.NoError(t, <-walletErr)
	assert.True(t, errors.Is(err, walletlink.ErrChainMismatch))
}

func TestLogin_TimesOutWithoutWallet(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := withTimeout(300 * time.Millisecond)
	defer cancel()
	_, _, err := h.client.OpenSession(ctx, linkOptions(false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	<-h.prompts
}

func TestRestore_FromStoreWithoutNetwork(t *testing.T) {
	dir := t.TempDir()
	sessions := store.NewSessionFileStore(dir, "")
	require.NoError(t, sessions.SaveLinkSession(domain.StoredSession{
		AppID:       "taskly",
		ChainID:     testChain,
		Auth:        domain.PermissionLevel{Actor: "bob", Permission: "active"},
		LinkChannel: "link-bob",
	}))

	// Nothing listens on this port; restoring must not touch the network.
	client, err := walletlink.New(walletlink.Config{RelayURL: "http://127.0.0.1:1", Store: sessions})
	require.NoError(t, err)

	_, sess, err := client.OpenSession(context.Background(), linkOptions(true))
	require.NoError(t, err)
	assert.Equal(t, domain.AccountName("bob"), sess.Auth().Actor)
}

func TestRestore_Miss(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.client.OpenSession(context.Background(), linkOptions(true))
	assert.True(t, errors.Is(err, walletlink.ErrNoStoredSession))
	assert.True(t, errors.Is(err, domain.ErrNoStoredSession))
}

func TestTransact_RoundTrip(t *testing.T) {
	h := newHarness(t)
	_, sess := h.login(t)

	var got walletlink.TransactPayload
	walletErr := make(chan error, 1)
	go func() {
		walletErr <- h.wallet.serveLink(1, func(req walletlink.Request) (*walletlink.Callback, error) {
			if err := json.Unmarshal(req.Payload, &got); err != nil {
				return nil, err
			}
			return &walletlink.Callback{ID: req.ID, Result: &domain.TransactResult{
				TransactionID: "f00d",
				Processed: domain.TransactionTrace{
					ID:       "f00d",
					BlockNum: 42,
					Receipt:  &domain.TransactionReceiptHeader{Status: "executed"},
				},
			}}, nil
		})
	}()

	ctx, cancel := withTimeout(10 * time.Second)
	defer cancel()
	res, err := sess.Transact(ctx, domain.TransactArgs{Actions: []domain.Action{{
		Account:       "eosio.token",
		Name:          "transfer",
		Authorization: []domain.PermissionLevel{sess.Auth()},
		Data:          domain.TransferData{From: "alice", To: "bob", Quantity: "1.0000 XPR"},
	}}}, domain.TransactOptions{Broadcast: true})
	require.NoError(t, err)
	require.NoError(t, <-walletErr)

	assert.Equal(t, "f00d", res.TransactionID)
	assert.Equal(t, uint32(42), res.Processed.BlockNum)
	assert.True(t, got.Broadcast)
	assert.Equal(t, h.wallet.auth, got.Auth)
	require.Len(t, got.Transaction.Actions, 1)
	assert.Equal(t, domain.ActionName("transfer"), got.Transaction.Actions[0].Name)
}

func TestTransact_Rejected(t *testing.T) {
	h := newHarness(t)
	_, sess := h.login(t)

	walletErr := make(chan error, 1)
	go func() {
		walletErr <- h.wallet.serveLink(1, func(req walletlink.Request) (*walletlink.Callback, error) {
			return &walletlink.Callback{ID: req.ID, Error: "overdrawn balance"}, nil
		})
	}()

	ctx, cancel := withTimeout(10 * time.Second)
	defer cancel()
	_, err := sess.Transact(ctx, domain.TransactArgs{}, domain.TransactOptions{Broadcast: true})
	require.NoError(t, <-walletErr)
	assert.True(t, errors.Is(err, walletlink.ErrRejected))
	assert.Contains(t, err.Error(), "overdrawn balance")
}

func TestRemoveSession_NotifiesAndForgets(t *testing.T) {
	h := newHarness(t)
	link, sess := h.login(t)

	var removed walletlink.RemoveSessionPayload
	var reqType walletlink.RequestType
	walletErr := make(chan error, 1)
	go func() {
		walletErr <- h.wallet.serveLink(1, func(req walletlink.Request) (*walletlink.Callback, error) {
			reqType = req.Type
			return nil, json.Unmarshal(req.Payload, &removed)
		})
	}()

	ctx, cancel := withTimeout(10 * time.Second)
	defer cancel()
	require.NoError(t, link.RemoveSession(ctx, "taskly", sess.Auth(), sess.ChainID()))
	require.NoError(t, <-walletErr)

	assert.Equal(t, walletlink.RequestRemoveSession, reqType)
	assert.Equal(t, h.wallet.auth, removed.Auth)

	_, ok, err := h.store.LoadLinkSession("taskly", testChain)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = sess.Transact(ctx, domain.TransactArgs{}, domain.TransactOptions{})
	assert.True(t, errors.Is(err, walletlink.ErrSessionRemoved))
}

func TestController_EndToEnd(t *testing.T) {
	h := newHarness(t)
	ctrl := sessionsvc.New(h.client, sessionsvc.Options{Link: linkOptions(false)})

	// Start-up restore finds nothing.
	err := ctrl.Login(context.Background(), true)
	assert.True(t, errors.Is(err, domain.ErrNoStoredSession))

	walletErr := make(chan error, 1)
	go func() { walletErr <- h.wallet.answerLogin(h.prompts, "") }()
	ctx, cancel := withTimeout(10 * time.Second)
	defer cancel()
	require.NoError(t, ctrl.Login(ctx, false))
	require.NoError(t, <-walletErr)

	var payload walletlink.TransactPayload
	go func() {
		walletErr <- h.wallet.serveLink(2, func(req walletlink.Request) (*walletlink.Callback, error) {
			if req.Type == walletlink.RequestRemoveSession {
				return nil, nil
			}
			if err := json.Unmarshal(req.Payload, &payload); err != nil {
				return nil, err
			}
			return &walletlink.Callback{ID: req.ID, Result: &domain.TransactResult{TransactionID: "beef"}}, nil
		})
	}()

	res, err := ctrl.Transfer(ctx, domain.TransferRequest{To: "bob", Amount: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "beef", res.TransactionID)

	require.NoError(t, ctrl.Logout(ctx))
	require.NoError(t, <-walletErr)

	require.Len(t, payload.Transaction.Actions, 1)
	data, err := json.Marshal(payload.Transaction.Actions[0].Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"alice","to":"bob","quantity":"12.5000 XPR","memo":""}`, string(data))

	// A fresh controller over the same store has nothing to restore.
	again := sessionsvc.New(h.client, sessionsvc.Options{Link: linkOptions(false)})
	assert.True(t, errors.Is(again.Login(context.Background(), true), domain.ErrNoStoredSession))
}
