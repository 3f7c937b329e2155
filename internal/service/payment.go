package service

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/anst-dev/ChotTienBanHang/internal/model"
)

// PaymentService builds renderable VietQR payment image URLs for the shop's
// bank account. The URL is a deterministic function of its inputs; the
// remote image service does the rendering.
type PaymentService struct {
	bank model.BankInfo
}

func NewPaymentService(bank model.BankInfo) *PaymentService {
	return &PaymentService{bank: bank}
}

func (p *PaymentService) Bank() model.BankInfo {
	return p.bank
}

// QRImageURL returns the image URL for a payment of amount with an optional
// description. Amounts <= 0 leave the amount open on the QR.
func (p *PaymentService) QRImageURL(amount float64, description string) string {
	base := fmt.Sprintf("https://img.vietqr.io/image/%s-%s-compact2.png",
		p.bank.BankID, p.bank.AccountNo)

	q := url.Values{}
	if amount > 0 {
		q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	}
	if description != "" {
		q.Set("addInfo", description)
	}
	q.Set("accountName", p.bank.AccountName)
	return base + "?" + q.Encode()
}
