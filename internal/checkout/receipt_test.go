package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warungchat/internal/menu"
)

func TestReceipt_UsesSnapshotNotLiveCart(t *testing.T) {
	m, store, _ := newTestMachine(t)

	_, err := m.Receipt()
	assert.ErrorIs(t, err, ErrNoOrder)

	fill(store)
	_, err = m.Initiate()
	require.NoError(t, err)

	_, err = m.Receipt()
	assert.ErrorIs(t, err, ErrNoOrder, "unpaid orders have no receipt")

	_, err = m.ConfirmPayment(context.Background())
	require.NoError(t, err)

	store.Add(menu.Record{ID: "Z", Title: "Martabak", Price: "50 ribu"})

	r, err := m.Receipt()
	require.NoError(t, err)
	require.Len(t, r.Lines, 2)
	assert.Equal(t, int64(25000), r.Total)
	assert.Equal(t, 3, r.ItemCount)
	assert.Equal(t, ReceiptLine{Title: "Ayam Bakar", Quantity: 2, UnitPrice: 10000, Total: 20000}, r.Lines[0])
}

func TestReceipt_Print(t *testing.T) {
	m, store, _ := newTestMachine(t)
	fill(store)
	_, err := m.Initiate()
	require.NoError(t, err)
	order, err := m.ConfirmPayment(context.Background())
	require.NoError(t, err)

	out, err := m.PrintReceipt()
	require.NoError(t, err)
	assert.Equal(t, NewReceipt(order).Print(), out)

	assert.Contains(t, out, "ID Pesanan: "+order.ID)
	assert.Contains(t, out, "Tanggal: 07/03/2025")
	assert.Contains(t, out, "2 x Rp 10.000 = Rp 20.000")
	assert.Contains(t, out, "1 x Rp 5.000 = Rp 5.000")
	assert.Contains(t, out, "Total Bayar: Rp 25.000")
	assert.Contains(t, out, "Metode: E-Wallet (QRIS)")
}

func TestPaymentSummary(t *testing.T) {
	msg := PaymentSummary(Order{ID: "WKS250307090512AB", Total: 25000})

	assert.Contains(t, msg, "**ID Pesanan:** WKS250307090512AB")
	assert.Contains(t, msg, "Rp 25.000")
}
