package types

// TransferRequest asks the active session to send Amount tokens to To.
type TransferRequest struct {
	To     AccountName
	Amount float64
}
