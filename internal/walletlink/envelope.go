package walletlink

import (
	"encoding/json"
	"fmt"

	"xprlink/internal/crypto"
	"xprlink/internal/domain"
)

// RequestType discriminates the requests a wallet can receive.
type RequestType string

const (
	RequestIdentity      RequestType = "identity"
	RequestTransact      RequestType = "transact"
	RequestRemoveSession RequestType = "remove_session"
)

// Request is the signed envelope posted to a wallet-facing channel.
type Request struct {
	Type       RequestType          `json:"type"`
	ID         string               `json:"id"`
	AppID      domain.AppIdentifier `json:"app_id"`
	ChainID    domain.ChainID       `json:"chain_id"`
	Callback   domain.ChannelID     `json:"callback,omitempty"`
	CreatedUTC int64                `json:"created_utc"`
	Payload    json.RawMessage      `json:"payload"`
	PublicKey  []byte               `json:"public_key"`
	Signature  []byte               `json:"signature,omitempty"`
}

// IdentityPayload asks the wallet to authorize an account for the app.
type IdentityPayload struct {
	Selector  domain.SelectorOptions `json:"selector"`
	Endpoints []string               `json:"endpoints,omitempty"`
}

// TransactPayload asks the wallet to sign (and optionally broadcast) a
// transaction on behalf of Auth.
type TransactPayload struct {
	Auth        domain.PermissionLevel `json:"auth"`
	Transaction domain.TransactArgs    `json:"transaction"`
	Broadcast   bool                   `json:"broadcast"`
}

// RemoveSessionPayload tells the wallet the app dropped the session.
type RemoveSessionPayload struct {
	Auth domain.PermissionLevel `json:"auth"`
}

// Callback is what the wallet posts back on a request's callback channel.
type Callback struct {
	ID       string                 `json:"id"`
	Error    string                 `json:"error,omitempty"`
	Code     int                    `json:"code,omitempty"`
	Identity *IdentityProof         `json:"identity,omitempty"`
	Result   *domain.TransactResult `json:"result,omitempty"`
}

// IdentityProof is the wallet's answer to an identity request.
type IdentityProof struct {
	Auth        domain.PermissionLevel `json:"auth"`
	ChainID     domain.ChainID         `json:"chain_id"`
	LinkChannel domain.ChannelID       `json:"link_channel"`
	WalletName  string                 `json:"wallet_name,omitempty"`
}

// signingBytes is the canonical form covered by Signature: the envelope
// encoded without its signature.
func (r Request) signingBytes() ([]byte, error) {
	r.Signature = nil
	return json.Marshal(r)
}

// sign fills PublicKey and Signature from key.
func (r *Request) sign(key domain.Ed25519Private) error {
	pub := key.Public()
	r.PublicKey = append([]byte(nil), pub[:]...)
	msg, err := r.signingBytes()
	if err != nil {
		return err
	}
	r.Signature = crypto.SignEd25519(key, msg)
	return nil
}

// Verify checks Signature against PublicKey. Wallets call this before acting
// on a request, and compare PublicKey with the key seen at identity time.
func (r Request) Verify() error {
	if len(r.PublicKey) != len(domain.Ed25519Public{}) {
		return fmt.Errorf("%w: public key has %d bytes", ErrBadSignature, len(r.PublicKey))
	}
	var pub domain.Ed25519Public
	copy(pub[:], r.PublicKey)
	msg, err := r.signingBytes()
	if err != nil {
		return err
	}
	if !crypto.VerifyEd25519(pub, msg, r.Signature) {
		return ErrBadSignature
	}
	return nil
}

func newRequest(
	typ RequestType,
	id string,
	appID domain.AppIdentifier,
	chainID domain.ChainID,
	callback domain.ChannelID,
	created int64,
	payload any,
) (Request, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Request{}, fmt.Errorf("encode %s payload: %w", typ, err)
	}
	return Request{
		Type:       typ,
		ID:         id,
		AppID:      appID,
		ChainID:    chainID,
		Callback:   callback,
		CreatedUTC: created,
		Payload:    raw,
	}, nil
}
