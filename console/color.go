package console

import (
	"strings"
	"unicode"
)

// Game servers that speak Source RCON (Minecraft among them) embed
// formatting codes as a section sign followed by one code character.
const sectionSign = '§'

const (
	ansiReset = "\033[0m"
	ansiGrey  = "\033[0;37m"
	ansiDGrey = "\033[0;1;30m"
	ansiCyan  = "\033[0;36m"
	ansiLRed  = "\033[0;1;31m"
)

var formatCodes = map[rune]string{
	'0': "\033[0;30m",   // BLACK
	'1': "\033[0;34m",   // BLUE
	'2': "\033[0;32m",   // GREEN
	'3': ansiCyan,       // CYAN
	'4': "\033[0;31m",   // RED
	'5': "\033[0;35m",   // PURPLE
	'6': "\033[0;33m",   // GOLD
	'7': ansiGrey,       // GREY
	'8': ansiDGrey,      // DGREY
	'9': "\033[0;1;34m", // LBLUE
	'a': "\033[0;1;32m", // LGREEN
	'b': "\033[0;1;36m", // LCYAN
	'c': ansiLRed,       // LRED
	'd': "\033[0;1;35m", // LPURPLE
	'e': "\033[0;1;33m", // YELLOW
	'f': "\033[0;1;37m", // WHITE
	'n': "\033[4m",      // UNDERLINE
	'r': ansiReset,      // RESET
}

// stripFormatCodes removes section-sign format codes.
func stripFormatCodes(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	skip := false
	for _, r := range text {
		switch {
		case skip:
			skip = false
		case r == sectionSign:
			skip = true
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// convertFormatCodes turns section-sign format codes into ANSI sequences.
// Colors are reset at every line break and at the end.
func convertFormatCodes(text string) string {
	var result strings.Builder
	result.Grow(len(text) + len(ansiReset))

	code := false
	for _, r := range text {
		if code {
			code = false
			if ansi, ok := formatCodes[unicode.ToLower(r)]; ok {
				result.WriteString(ansi)
			}
			continue
		}
		if r == sectionSign {
			code = true
			continue
		}
		if r == '\n' {
			result.WriteString(ansiReset)
		}
		result.WriteRune(r)
	}

	result.WriteString(ansiReset)
	return result.String()
}

// stripControl drops control characters other than newline and tab, so a
// server cannot move the cursor or retitle the terminal.
func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, text)
}

func paint(color, text string) string {
	return color + text + ansiReset
}
