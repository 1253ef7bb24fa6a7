package storefront

import "fmt"

var welcomeMessages = []string{
	"🍽️ Halo! Selamat datang di ChatBot Menu Makanan! Saya siap membantu Anda mencari makanan lezat!",
	"👋 Hai! Mau cari menu apa hari ini? Saya punya banyak rekomendasi makanan enak!",
	"🌟 Selamat datang! Ceritakan selera Anda, saya akan carikan menu yang pas!",
	"😊 Halo! Lagi lapar ya? Yuk chat dengan saya untuk mencari menu favorit!",
}

const tipsMessage = "💡 **Tips:** Coba ketik seperti:\n" +
	"• \"ada ikan?\" - untuk menu ikan\n" +
	"• \"yang pedas\" - untuk makanan pedas\n" +
	"• \"menu ayam bakar\" - untuk ayam bakar\n" +
	"• \"random menu\" - untuk surprise!"

const clearedMessage = "🔄 Chat telah dibersihkan. Selamat datang kembali!\n" +
	"Saya siap membantu Anda mencari menu makanan yang lezat."

const emptyCartAlert = "Keranjang belanja kosong!"

func sendFailedMessage(err error) string {
	return fmt.Sprintf("❌ Maaf, terjadi kesalahan saat menghubungi server.\n\n"+
		"Error: %s\n\n"+
		"💡 Silakan coba lagi atau refresh halaman.", err)
}

func addedNotice(title string) string {
	return title + " ditambahkan ke keranjang!"
}

// SuggestionSets rotate under the input box as quick replies.
var SuggestionSets = [][]Suggestion{
	{
		{Text: "ada ikan?", Emoji: "🐟", Label: "Menu Ikan"},
		{Text: "yang pedas", Emoji: "🌶️", Label: "Menu Pedas"},
		{Text: "menu sapi", Emoji: "🐄", Label: "Menu Sapi"},
		{Text: "menu random", Emoji: "🎲", Label: "Surprise Me"},
	},
	{
		{Text: "makanan berkuah", Emoji: "🍲", Label: "Yang Berkuah"},
		{Text: "seafood enak", Emoji: "🦐", Label: "Seafood"},
		{Text: "Vegetarian", Emoji: "🥦", Label: "Vegetarian"},
		{Text: "menu manis", Emoji: "🍯", Label: "Rasa Manis"},
	},
	{
		{Text: "sup hangat", Emoji: "🥣", Label: "Sup Hangat"},
		{Text: "menu ayam", Emoji: "🍗", Label: "Olahan Ayam"},
		{Text: "makanan padang", Emoji: "🌶️", Label: "Masakan Padang"},
		{Text: "help", Emoji: "🚨", Label: "Butuh bantuan?"},
	},
}

type Suggestion struct {
	Text  string
	Emoji string
	Label string
}
