package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_StrongThenEmphasis(t *testing.T) {
	got := Message("**hi** *there*")
	assert.Equal(t, "<strong>hi</strong> <em>there</em>", got)
}

func TestMessage_UnpairedAsteriskUnchanged(t *testing.T) {
	assert.Equal(t, "2 * 3", Message("2 * 3"))
	assert.Equal(t, "*", Message("*"))
}

func TestMessage_Rules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"code", "ketik `help`", "ketik <code>help</code>"},
		{"newline", "a\nb", "a<br>b"},
		{"bullet", "• ikan", "&bull; ikan"},
		{"emoji", "Halo 👋", `Halo <span class="emoji">👋</span>`},
		{"zwj emoji", "👨‍🍳 siap", `<span class="emoji">👨‍🍳</span> siap`},
		{"escapes html", "<b>x</b>", "&lt;b&gt;x&lt;/b&gt;"},
		{"escaped exactly once", "a &amp; b", "a &amp;amp; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.in))
		})
	}
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "ID Pesanan: WKS1", Plain("**ID Pesanan:** WKS1"))
	assert.Equal(t, "a b c", Plain("*a* `b` c"))
}

type bracketStyler struct{}

func (bracketStyler) Strong(s string) string   { return "[B:" + s + "]" }
func (bracketStyler) Emphasis(s string) string { return "[I:" + s + "]" }
func (bracketStyler) Code(s string) string     { return "[C:" + s + "]" }

func TestStyled_Order(t *testing.T) {
	got := Styled("**x** *y* `z`", bracketStyler{})
	assert.Equal(t, "[B:x] [I:y] [C:z]", got)
}
