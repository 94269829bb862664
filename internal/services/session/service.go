package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"xprlink/internal/domain"
)

const (
	DefaultTokenContract  = domain.AccountName("eosio.token")
	DefaultTokenSymbol    = "XPR"
	DefaultTokenPrecision = 4

	transferAction = domain.ActionName("transfer")
)

var (
	// ErrNoSession is returned by Transfer when no session is active.
	ErrNoSession = errors.New("No Session")
)

// Options configure a Controller.
type Options struct {
	// Link is passed to the connector on every Login; RestoreSession is
	// overridden by the Login argument.
	Link domain.LinkOptions

	TokenContract domain.AccountName
	TokenSymbol   string

	// TokenPrecision is the number of decimals in a quantity. Nil selects
	// DefaultTokenPrecision; zero is a valid precision.
	TokenPrecision *int

	Logger *zap.Logger
}

// Controller owns the link/session pair for one application.
type Controller struct {
	connector domain.WalletConnector
	opts      Options
	precision int
	log       *zap.Logger

	mu      sync.Mutex
	link    domain.Link
	session domain.Session
}

// New constructs a Controller that opens sessions through connector.
func New(connector domain.WalletConnector, opts Options) *Controller {
	if opts.TokenContract == "" {
		opts.TokenContract = DefaultTokenContract
	}
	if opts.TokenSymbol == "" {
		opts.TokenSymbol = DefaultTokenSymbol
	}
	precision := DefaultTokenPrecision
	if opts.TokenPrecision != nil {
		precision = *opts.TokenPrecision
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{connector: connector, opts: opts, precision: precision, log: log.Named("session")}
}

// Precision returns a pointer to n, for Options.TokenPrecision.
func Precision(n int) *int { return &n }

// Quantity renders amount the way Transfer puts it on the wire, e.g.
// "12.5000 XPR".
func (c *Controller) Quantity(amount float64) (string, error) {
	return FormatQuantity(amount, c.precision, c.opts.TokenSymbol)
}

// Login asks the connector for a session and stores the returned handles,
// replacing any current ones.
//
// With restoreSession set the connector only restores a persisted session.
// If there is none it reports domain.ErrNoStoredSession; the handles are then
// cleared, as if the connector had returned empty ones, and the error is
// returned so start-up can tell "not logged in" from a failure. Any other
// error leaves the handles untouched.
func (c *Controller) Login(ctx context.Context, restoreSession bool) error {
	opts := c.opts.Link
	opts.RestoreSession = restoreSession

	link, sess, err := c.connector.OpenSession(ctx, opts)
	if errors.Is(err, domain.ErrNoStoredSession) {
		c.store(nil, nil)
		c.log.Debug("no session to restore", zap.String("app", opts.RequestAccount.String()))
		return err
	}
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	c.store(link, sess)
	c.log.Info("session ready",
		zap.Bool("restored", restoreSession),
		zap.String("auth", sess.Auth().String()),
		zap.String("chain_id", sess.ChainID().String()),
	)
	return nil
}

// Logout asks the link to drop the current session, then clears local state
// whatever the outcome. Without a session it does nothing.
func (c *Controller) Logout(ctx context.Context) error {
	link, sess := c.snapshot()

	var err error
	if link != nil && sess != nil {
		auth := sess.Auth()
		err = link.RemoveSession(ctx, c.opts.Link.RequestAccount, auth, sess.ChainID())
		if err != nil {
			c.log.Warn("remove session failed", zap.String("auth", auth.String()), zap.Error(err))
			err = fmt.Errorf("remove session: %w", err)
		} else {
			c.log.Info("session removed", zap.String("auth", auth.String()))
		}
	}

	c.store(nil, nil)
	return err
}

// Transfer sends req.Amount tokens from the session's actor to req.To in a
// single broadcast transaction and returns the wallet's result.
func (c *Controller) Transfer(ctx context.Context, req domain.TransferRequest) (domain.TransactResult, error) {
	_, sess := c.snapshot()
	if sess == nil {
		return domain.TransactResult{}, ErrNoSession
	}

	quantity, err := c.Quantity(req.Amount)
	if err != nil {
		return domain.TransactResult{}, err
	}

	auth := sess.Auth()
	args := domain.TransactArgs{
		Actions: []domain.Action{{
			Account:       c.opts.TokenContract,
			Name:          transferAction,
			Authorization: []domain.PermissionLevel{auth},
			Data: domain.TransferData{
				From:     auth.Actor,
				To:       req.To,
				Quantity: quantity,
				Memo:     "",
			},
		}},
	}

	c.log.Debug("submitting transfer",
		zap.String("from", auth.Actor.String()),
		zap.String("to", req.To.String()),
		zap.String("quantity", quantity),
	)
	res, err := sess.Transact(ctx, args, domain.TransactOptions{Broadcast: true})
	if err != nil {
		return domain.TransactResult{}, fmt.Errorf("transact: %w", err)
	}
	c.log.Info("transfer broadcast", zap.String("trx_id", res.TransactionID))
	return res, nil
}

// Current returns the active session, if any.
func (c *Controller) Current() (domain.Session, bool) {
	_, sess := c.snapshot()
	return sess, sess != nil
}

func (c *Controller) snapshot() (domain.Link, domain.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.link, c.session
}

func (c *Controller) store(link domain.Link, sess domain.Session) {
	c.mu.Lock()
	c.link, c.session = link, sess
	c.mu.Unlock()
}

var _ domain.SessionController = (*Controller)(nil)
