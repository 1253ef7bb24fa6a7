package checkout

import (
	"fmt"
	"strings"
	"time"

	"warungchat/internal/menu"
)

const (
	MerchantName    = "WARUNG KARTIKA SARI"
	MerchantAddress = "Jl. Raya Kuliner No. 123"
	MerchantPhone   = "(021) 123-4567"
	PaymentMethod   = "E-Wallet (QRIS)"
	StatusPaid      = "LUNAS"
)

type ReceiptLine struct {
	Title     string
	Quantity  int
	UnitPrice int64
	Total     int64
}

// Receipt is a read-only view of a paid order.
type Receipt struct {
	OrderID   string
	IssuedAt  time.Time
	Lines     []ReceiptLine
	ItemCount int
	Total     int64
	Method    string
	Status    string
}

func NewReceipt(o Order) Receipt {
	r := Receipt{
		OrderID:   o.ID,
		IssuedAt:  o.CreatedAt,
		ItemCount: o.ItemCount,
		Total:     o.Total,
		Method:    PaymentMethod,
		Status:    StatusPaid,
	}
	if o.PaidAt != nil {
		r.IssuedAt = *o.PaidAt
	}

	for _, it := range o.Items {
		r.Lines = append(r.Lines, ReceiptLine{
			Title:     it.Menu.DisplayTitle(),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice(),
			Total:     it.Total(),
		})
	}
	return r
}

const rule = "================================"
const thin = "--------------------------------"

// Print renders the receipt as monospaced text, ready for a printer.
func (r Receipt) Print() string {
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, MerchantName)
	fmt.Fprintln(&b, MerchantAddress)
	fmt.Fprintf(&b, "Telp: %s\n", MerchantPhone)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "ID Pesanan: %s\n", r.OrderID)
	fmt.Fprintf(&b, "Tanggal: %s\n", r.IssuedAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "Waktu: %s\n", r.IssuedAt.Format("15.04.05"))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, thin)
	fmt.Fprintln(&b, "RINCIAN PESANAN:")
	fmt.Fprintln(&b, thin)

	for _, l := range r.Lines {
		fmt.Fprintln(&b, l.Title)
		fmt.Fprintf(&b, "%d x %s = %s\n\n",
			l.Quantity, menu.FormatPrice(l.UnitPrice), menu.FormatPrice(l.Total))
	}

	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Total Item: %d\n", r.ItemCount)
	fmt.Fprintf(&b, "Total Bayar: %s\n", menu.FormatPrice(r.Total))
	fmt.Fprintf(&b, "Metode: %s\n", r.Method)
	fmt.Fprintf(&b, "Status: %s ✅\n", r.Status)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Terima kasih atas kunjungan Anda!")
	fmt.Fprintln(&b, "Selamat menikmati makanan 🍽️")
	fmt.Fprintln(&b)
	fmt.Fprint(&b, rule)

	return b.String()
}

// PaymentSummary is the chat message posted once payment goes through.
func PaymentSummary(o Order) string {
	return "🎉 **Pembayaran Berhasil!**\n\n" +
		"📄 **ID Pesanan:** " + o.ID + "\n" +
		"💰 **Total:** " + menu.FormatPrice(o.Total) + "\n" +
		"📱 **Metode:** " + PaymentMethod + "\n" +
		"📦 **Status:** Pesanan sedang diproses\n\n" +
		"Terima kasih! Pesanan Anda akan segera disiapkan."
}

// ThankYouMessage is posted when the user starts a new order.
const ThankYouMessage = "🎉 Terima kasih sudah berbelanja! Mau pesan lagi?\n\n" +
	"💡 Ketik menu yang Anda inginkan atau 'menu random' untuk surprise!"
