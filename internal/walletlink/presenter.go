package walletlink

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"xprlink/internal/domain"
)

// TerminalPresenter prints the login request for the user to open in a
// wallet. It stands in for a graphical wallet selector.
type TerminalPresenter struct {
	Out io.Writer
}

// PresentLogin writes the app banner and the link URI to Out.
func (p TerminalPresenter) PresentLogin(prompt domain.LoginPrompt) error {
	title := color.New(color.Bold)
	link := color.New(color.FgMagenta, color.Underline)
	muted := color.New(color.Faint)

	name := prompt.Selector.AppName
	if name == "" {
		name = "xprlink"
	}
	if _, err := title.Fprintf(p.Out, "%s wants to connect to your wallet\n", name); err != nil {
		return err
	}
	if prompt.Selector.AppLogo != "" {
		if _, err := muted.Fprintf(p.Out, "logo: %s\n", prompt.Selector.AppLogo); err != nil {
			return err
		}
	}
	if _, err := muted.Fprintf(p.Out, "chain: %s\n", prompt.ChainID); err != nil {
		return err
	}
	if _, err := fmt.Fprint(p.Out, "Open this link in your wallet: "); err != nil {
		return err
	}
	_, err := link.Fprintln(p.Out, prompt.URI)
	return err
}

// PresenterFunc adapts a function to domain.Presenter.
type PresenterFunc func(domain.LoginPrompt) error

// PresentLogin calls f.
func (f PresenterFunc) PresentLogin(prompt domain.LoginPrompt) error { return f(prompt) }

var (
	_ domain.Presenter = TerminalPresenter{}
	_ domain.Presenter = PresenterFunc(nil)
)
