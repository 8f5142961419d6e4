package discord

import (
	"regexp"
	"strconv"
	"strings"
)

// Message cleanup patterns. Links are dropped entirely (the engine would
// spell them out), custom emoji tags are replaced by their name, and the
// inline reroll command is extracted before the message is spoken.
var (
	rollPattern  = regexp.MustCompile(`\[:roll\s*(\d+)\s*\]`)
	urlPattern   = regexp.MustCompile(`https?://[^\s/$.?#].[^\s]*`)
	emojiPattern = regexp.MustCompile(`<a?:(\w+):\d+>`)
)

// RequestedRoll extracts the roll value from an inline "[:roll N]" command.
// The second return is false when the message contains no (parseable)
// command.
func RequestedRoll(content string) (uint64, bool) {
	m := rollPattern.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	roll, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return roll, true
}

// StripRollRequest removes all inline "[:roll N]" commands from content.
func StripRollRequest(content string) string {
	return rollPattern.ReplaceAllString(content, "")
}

// Sanitize prepares message content for speech: URLs are removed, custom
// Discord emoji tags are replaced by their bare name, and surrounding
// whitespace is trimmed.
func Sanitize(content string) string {
	content = urlPattern.ReplaceAllString(content, "")
	content = emojiPattern.ReplaceAllString(content, "$1")
	return strings.TrimSpace(content)
}
