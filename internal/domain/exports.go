package domain

import (
	interfaces "xprlink/internal/domain/interfaces"
	types "xprlink/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	AccountName              = types.AccountName
	PermissionName           = types.PermissionName
	ActionName               = types.ActionName
	ChainID                  = types.ChainID
	AppIdentifier            = types.AppIdentifier
	ChannelID                = types.ChannelID
	PermissionLevel          = types.PermissionLevel
	Action                   = types.Action
	TransferData             = types.TransferData
	TransferRequest          = types.TransferRequest
	TransactArgs             = types.TransactArgs
	TransactOptions          = types.TransactOptions
	TransactResult           = types.TransactResult
	TransactionTrace         = types.TransactionTrace
	TransactionReceiptHeader = types.TransactionReceiptHeader
	ActionTrace              = types.ActionTrace
	LinkOptions              = types.LinkOptions
	SelectorOptions          = types.SelectorOptions
	CustomStyleOptions       = types.CustomStyleOptions
	LoginPrompt              = types.LoginPrompt
	StoredSession            = types.StoredSession
	Ed25519Public            = types.Ed25519Public
	Ed25519Private           = types.Ed25519Private
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	WalletConnector   = interfaces.WalletConnector
	Link              = interfaces.Link
	Session           = interfaces.Session
	Presenter         = interfaces.Presenter
	SessionStore      = interfaces.SessionStore
	SessionController = interfaces.SessionController
)
