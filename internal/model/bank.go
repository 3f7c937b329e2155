package model

// BankInfo identifies the account a payment QR image is generated for.
type BankInfo struct {
	BankID      string `json:"bank_id"`
	AccountNo   string `json:"account_no"`
	AccountName string `json:"account_name"`
}
