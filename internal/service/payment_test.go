package service

import (
	"testing"

	"github.com/anst-dev/ChotTienBanHang/internal/model"
)

func TestQRImageURL(t *testing.T) {
	svc := NewPaymentService(model.BankInfo{
		BankID:      "MB",
		AccountNo:   "0982094668",
		AccountName: "NGUYEN DANG HIEU",
	})

	testCases := []struct {
		name        string
		amount      float64
		description string
		want        string
	}{
		{
			name:        "amount and description",
			amount:      50000,
			description: "tra tien hang",
			want:        "https://img.vietqr.io/image/MB-0982094668-compact2.png?accountName=NGUYEN+DANG+HIEU&addInfo=tra+tien+hang&amount=50000",
		},
		{
			name:   "amount only",
			amount: 250000,
			want:   "https://img.vietqr.io/image/MB-0982094668-compact2.png?accountName=NGUYEN+DANG+HIEU&amount=250000",
		},
		{
			name: "open amount",
			want: "https://img.vietqr.io/image/MB-0982094668-compact2.png?accountName=NGUYEN+DANG+HIEU",
		},
		{
			name:   "negative amount left open",
			amount: -10,
			want:   "https://img.vietqr.io/image/MB-0982094668-compact2.png?accountName=NGUYEN+DANG+HIEU",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := svc.QRImageURL(tc.amount, tc.description); got != tc.want {
				t.Errorf("url = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestQRImageURLDeterministic(t *testing.T) {
	svc := NewPaymentService(model.BankInfo{BankID: "MB", AccountNo: "1", AccountName: "A"})
	first := svc.QRImageURL(1000, "ghi chú")
	second := svc.QRImageURL(1000, "ghi chú")
	if first != second {
		t.Error("url construction must be deterministic")
	}
}
