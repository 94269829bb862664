package types

// TransactArgs is what a session is asked to sign.
type TransactArgs struct {
	Actions []Action `json:"actions"`
}

// TransactOptions controls how the wallet handles a signed transaction.
type TransactOptions struct {
	Broadcast bool `json:"broadcast"`
}

// TransactResult is returned by the wallet after signing (and broadcasting).
type TransactResult struct {
	TransactionID string           `json:"transaction_id,omitempty"`
	Processed     TransactionTrace `json:"processed"`
}

// TransactionTrace is the subset of the chain's processed-transaction trace
// the client surfaces.
type TransactionTrace struct {
	ID           string                    `json:"id"`
	BlockNum     uint32                    `json:"block_num"`
	BlockTime    string                    `json:"block_time"`
	Receipt      *TransactionReceiptHeader `json:"receipt"`
	Elapsed      int64                     `json:"elapsed"`
	NetUsage     int64                     `json:"net_usage"`
	Scheduled    bool                      `json:"scheduled"`
	ActionTraces []ActionTrace             `json:"action_traces"`
	Except       any                       `json:"except"`
}

// TransactionReceiptHeader reports execution status and billed resources.
type TransactionReceiptHeader struct {
	Status        string `json:"status"`
	CPUUsageUS    int64  `json:"cpu_usage_us"`
	NetUsageWords int64  `json:"net_usage_words"`
}

// ActionTrace is the trace of one executed action.
type ActionTrace struct {
	ActionOrdinal uint32      `json:"action_ordinal"`
	Receiver      AccountName `json:"receiver"`
	Act           Action      `json:"act"`
	Console       string      `json:"console"`
	TrxID         string      `json:"trx_id"`
	BlockNum      uint32      `json:"block_num"`
}
