package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xprlink/internal/crypto"
	"xprlink/internal/domain"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Home:           t.TempDir(),
		RelayURL:       "http://127.0.0.1:1",
		AppIdentifier:  "taskly",
		ChainID:        "chain-1",
		Timeout:        time.Second,
		AppName:        "Tasklyy",
		TokenContract:  "eosio.token",
		TokenSymbol:    "XPR",
		TokenPrecision: 4,
	}
}

func TestNew_RejectsBadRelay(t *testing.T) {
	cfg := testConfig(t)
	cfg.RelayURL = "not a url"
	_, err := New(cfg, &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestRestore_NothingStored(t *testing.T) {
	a, err := New(testConfig(t), &bytes.Buffer{}, nil)
	require.NoError(t, err)

	ok, err := a.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	_, active := a.Sessions.Current()
	assert.False(t, active)
}

func TestRestore_FromStore(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	priv, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	auth := domain.PermissionLevel{Actor: "alice", Permission: "active"}
	require.NoError(t, a.Store.SaveLinkSession(domain.StoredSession{
		AppID:       cfg.AppIdentifier,
		ChainID:     cfg.ChainID,
		Auth:        auth,
		LinkChannel: "link-alice",
		RequestKey:  priv,
	}))

	ok, err := a.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	sess, active := a.Sessions.Current()
	require.True(t, active)
	assert.Equal(t, auth, sess.Auth())
}

func TestWithTimeout(t *testing.T) {
	a := &App{Config: &Config{Timeout: time.Minute}}
	ctx, cancel := a.WithTimeout(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)

	a.Config.Timeout = 0
	ctx2, cancel2 := a.WithTimeout(context.Background())
	defer cancel2()
	_, ok = ctx2.Deadline()
	assert.False(t, ok)
}
