// Package format turns the assistant's lightweight markup (**bold**, *italic*,
// `code`, newlines, bullets, emoji) into display markup.
package format

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

var (
	strongRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
	emRe     = regexp.MustCompile(`\*([^*\n]+?)\*`)
	codeRe   = regexp.MustCompile("`([^`\n]+?)`")
	emojiRe  = buildEmojiPattern()
)

// emojiAllowList are the glyphs that get the emoji styling span.
var emojiAllowList = []string{
	"🍽️", "🌶️", "🍳", "🥘", "🏛️", "📊", "💡", "😕", "✅", "❌", "👍", "🤔",
	"🎲", "📂", "🛒", "👨‍🍳", "🔗", "😔", "🔍", "💭", "🎉", "✨", "🐟", "🦐",
	"🥣", "🍗", "🍯", "🥬", "📄", "💰", "📱", "🎊", "📋", "💫", "🌟", "👋", "😊",
}

func buildEmojiPattern() *regexp.Regexp {
	list := append([]string(nil), emojiAllowList...)
	// longer sequences first so ZWJ and variation-selector forms win
	sort.SliceStable(list, func(i, j int) bool { return len(list[i]) > len(list[j]) })

	quoted := make([]string, len(list))
	for i, e := range list {
		quoted[i] = regexp.QuoteMeta(e)
	}
	return regexp.MustCompile("(" + strings.Join(quoted, "|") + ")")
}

// Message renders text as safe HTML. The input is escaped once up front, so
// user text can never inject tags and entities are never escaped twice.
// Strong markers are consumed before single-asterisk emphasis.
func Message(text string) string {
	out := html.EscapeString(text)
	out = strongRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = emRe.ReplaceAllString(out, "<em>$1</em>")
	out = codeRe.ReplaceAllString(out, "<code>$1</code>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	out = strings.ReplaceAll(out, "•", "&bull;")
	out = emojiRe.ReplaceAllString(out, `<span class="emoji">$1</span>`)
	return out
}

// Styler decorates spans for non-HTML outputs such as a terminal.
type Styler interface {
	Strong(s string) string
	Emphasis(s string) string
	Code(s string) string
}

// Styled applies the same span rules as Message, in the same order, but lets
// the caller decide how each span looks. Newlines and emoji are left as is.
func Styled(text string, st Styler) string {
	out := replaceSubmatch(strongRe, text, st.Strong)
	out = replaceSubmatch(emRe, out, st.Emphasis)
	return replaceSubmatch(codeRe, out, st.Code)
}

// Plain strips the markup markers and keeps the text.
func Plain(text string) string {
	return Styled(text, plain{})
}

type plain struct{}

func (plain) Strong(s string) string   { return s }
func (plain) Emphasis(s string) string { return s }
func (plain) Code(s string) string     { return s }

func replaceSubmatch(re *regexp.Regexp, s string, fn func(string) string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		if len(sub) < 2 {
			return m
		}
		return fn(sub[1])
	})
}
