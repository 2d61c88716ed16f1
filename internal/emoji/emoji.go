package emoji

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"maze":       {"🧩", "[MAZE]"},
	"image":      {"🖼️", "[IMG]"},
	"processing": {"⏳", "[...]"},
	"path":       {"🧭", "[PATH]"},
	"explored":   {"🔍", "[EXP]"},
	"timer":      {"⏱️", "[TIME]"},
	"download":   {"💾", "[SAVE]"},
	"link":       {"🔗", "[URL]"},
	"drop":       {"📥", "[DROP]"},
	"folder":     {"📁", "[DIR]"},
	"hint":       {"💡", "[TIP]"},
	"rocket":     {"🚀", "[GO]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	return Lookup(key, !emojiDisabled)
}

// Lookup returns the emoji for key, or its text fallback when enabled is false
func Lookup(key string, enabled bool) string {
	mapping, exists := emojiMap[key]
	if !exists {
		return "[?]"
	}
	if enabled {
		return mapping[0]
	}
	return mapping[1]
}
