package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"warungchat/internal/checkout"
	"warungchat/internal/format"
	"warungchat/internal/menu"
	"warungchat/internal/storefront"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTitle() + "\n")

	// fixed rows: title, notice, suggestions, input, help
	bodyHeight := max(3, m.height-5)

	var body string
	switch m.app.Orders.State() {
	case checkout.ReviewingCart:
		body = m.renderCart()
	case checkout.AwaitingPayment:
		body = m.renderPayment()
	case checkout.PaymentConfirmed, checkout.ReceiptIssued:
		body = m.renderReceipt()
	default:
		switch m.mode {
		case modeMenus:
			body = m.renderMenus()
		case modeDetail:
			body = m.renderDetail()
		default:
			body = m.renderTranscript(bodyHeight)
		}
	}
	b.WriteString(fitHeight(body, bodyHeight) + "\n")

	switch {
	case m.notice != "" && m.alert:
		b.WriteString(alertStyle.Render(m.notice))
	case m.notice != "":
		b.WriteString(noticeStyle.Render("✓ " + m.notice))
	case m.app.Loading():
		b.WriteString(dimStyle.Render("  🤖 sedang mengetik..."))
	}
	b.WriteString("\n")

	b.WriteString(m.renderSuggestions() + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTitle() string {
	status := offlineStyle.Render("● Offline")
	if m.app.Connected() {
		status = onlineStyle.Render("● Online")
	}

	totals := m.app.Cart.Totals()
	cart := dimStyle.Render(fmt.Sprintf("  🛒 %d item · %s", totals.Items, menu.FormatPrice(totals.Amount)))
	return titleStyle.Render("Warung Kartika Sari") + " " + status + cart
}

// ---- Transcript ----

func (m Model) renderTranscript(height int) string {
	width := max(20, m.width-2)
	wrap := lipgloss.NewStyle().Width(width)

	var lines []string
	for _, msg := range m.app.Transcript() {
		role := botRoleStyle.Render(" Bot ")
		if msg.Author == storefront.User {
			role = userRoleStyle.Render(" Anda ")
		}
		lines = append(lines, role+" "+dimStyle.Render(msg.At.Format("15:04")))
		lines = append(lines, strings.Split(wrap.Render(format.Styled(msg.Text, termStyler{})), "\n")...)
		lines = append(lines, "")
	}

	// keep the newest messages in view
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}

// ---- Menus ----

func (m Model) renderMenus() string {
	cards := m.app.Catalog.Cards()
	if len(cards) == 0 {
		return dimStyle.Render("  Tidak ada menu yang ditemukan")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("🍽️ Rekomendasi Menu (%d)", len(cards))) + "\n")
	for i, c := range cards {
		row := fmt.Sprintf("%-32s %-20s %s", truncate(c.Title, 32), c.Price, c.Rating)
		if i == m.menuCursor {
			b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Left, selectedStyle.Render(row)))
		} else {
			b.WriteString(normalStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	d, err := m.app.Catalog.ViewDetail(m.menuCursor)
	if err != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(strongStyle.Render(d.Title) + "\n")
	b.WriteString(priceStyle.Render(d.Price) + "\n")
	if d.Category != "" {
		b.WriteString("Kategori: " + d.Category + "\n")
	}
	if d.Stars != "" {
		b.WriteString(d.Stars + " " + d.Rating + "\n")
	}
	if d.Ingredients != "" {
		b.WriteString("\n" + strongStyle.Render("Bahan:") + "\n" + d.Ingredients + "\n")
	}
	if d.Description != "" {
		b.WriteString("\n" + d.Description + "\n")
	}
	if d.HasImage {
		b.WriteString("\n" + dimStyle.Render(d.Image) + "\n")
	}
	return overlayStyle.Width(min(70, m.width-4)).Render(strings.TrimRight(b.String(), "\n"))
}

// ---- Checkout ----

func (m Model) renderCart() string {
	items := m.app.Cart.Items()

	var b strings.Builder
	b.WriteString(strongStyle.Render("🛒 Keranjang Belanja") + "\n\n")
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("Keranjang masih kosong") + "\n")
	}
	for i, it := range items {
		row := fmt.Sprintf("%-28s %3d x %-12s %s",
			truncate(it.Menu.DisplayTitle(), 28), it.Quantity,
			menu.FormatPrice(it.UnitPrice()), menu.FormatPrice(it.Total()))
		if i == m.cartCursor {
			row = selectedStyle.Render(row)
		} else {
			row = normalStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}

	totals := m.app.Cart.Totals()
	b.WriteString(fmt.Sprintf("\nTotal: %d item  %s", totals.Items, priceStyle.Render(menu.FormatPrice(totals.Amount))))
	if m.confirming {
		b.WriteString("\n\n" + alertStyle.Render("Kosongkan keranjang? (y/n)"))
	}
	return overlayStyle.Render(b.String())
}

func (m Model) renderPayment() string {
	o, ok := m.app.Orders.Order()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(strongStyle.Render("📱 Pembayaran "+checkout.PaymentMethod) + "\n\n")
	b.WriteString("ID Pesanan: " + o.ID + "\n")
	b.WriteString(fmt.Sprintf("Jumlah item: %d\n", o.ItemCount))
	b.WriteString("Total: " + priceStyle.Render(menu.FormatPrice(o.Total)) + "\n\n")
	if m.app.Orders.Busy() {
		b.WriteString(dimStyle.Render("⏳ Memeriksa pembayaran..."))
	} else {
		b.WriteString("Scan kode QRIS lalu tekan Enter setelah membayar.")
	}
	return overlayStyle.Render(b.String())
}

func (m Model) renderReceipt() string {
	r, err := m.app.Orders.Receipt()
	if err != nil {
		return ""
	}
	return overlayStyle.Render(strings.TrimRight(r.Print(), "\n"))
}

// ---- Footer ----

func (m Model) renderSuggestions() string {
	parts := make([]string, 0, len(m.suggestions))
	for i, s := range m.suggestions {
		parts = append(parts, fmt.Sprintf("F%d %s %s", i+1, s.Emoji, s.Label))
	}
	return dimStyle.Render("  " + strings.Join(parts, "   "))
}

func (m Model) renderHelp() string {
	var help string
	switch m.app.Orders.State() {
	case checkout.ReviewingCart:
		help = "↑/↓: pilih  +/-: jumlah  d: hapus  x: kosongkan  Enter: checkout  Esc: tutup"
	case checkout.AwaitingPayment:
		help = "Enter: cek pembayaran  Esc: batal"
	case checkout.PaymentConfirmed, checkout.ReceiptIssued:
		help = "n: pesan lagi  Esc: tutup"
	default:
		switch m.mode {
		case modeMenus:
			help = "↑/↓: pilih  Enter: detail  a: tambah  c: keranjang  Esc: chat"
		case modeDetail:
			help = "a: tambah ke keranjang  Esc: kembali"
		default:
			help = "Enter: kirim  Tab: menu  Ctrl+K: keranjang  Ctrl+T: saran lain  Ctrl+L: bersihkan  Ctrl+C: keluar"
		}
	}
	return statusBarStyle.Render(help)
}

func fitHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-2]) + ".."
}
