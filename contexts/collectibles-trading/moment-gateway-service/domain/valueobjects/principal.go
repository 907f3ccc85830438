package valueobjects

import (
	"encoding/base32"
	"encoding/binary"
	"hash/crc32"
	"strings"
)

// Principal text format: lowercase unpadded base32 in dash-separated groups
// of five characters, where the decoded bytes start with a big-endian CRC32
// of the remaining payload.

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// IsValidPrincipal reports whether the text is a well-formed principal.
func IsValidPrincipal(text string) bool {
	text = CanonicalText(text)
	if text == "" {
		return false
	}
	groups := strings.Split(text, "-")
	for i, group := range groups {
		if len(group) == 0 || len(group) > 5 {
			return false
		}
		if i < len(groups)-1 && len(group) != 5 {
			return false
		}
	}
	compact := strings.ReplaceAll(text, "-", "")
	raw, err := principalEncoding.DecodeString(strings.ToUpper(compact))
	if err != nil || len(raw) < 5 {
		return false
	}
	// Reject non-canonical trailing bits.
	if strings.ToLower(principalEncoding.EncodeToString(raw)) != compact {
		return false
	}
	checksum := binary.BigEndian.Uint32(raw[:4])
	return checksum == crc32.ChecksumIEEE(raw[4:])
}

// CanonicalText normalizes principal text: trimmed, lowercase.
func CanonicalText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// FormatPrincipal truncates a principal for display, keeping length
// characters from each end.
func FormatPrincipal(text string, length int) string {
	if length <= 0 {
		length = 8
	}
	if len(text) <= length*2 {
		return text
	}
	return text[:length] + "..." + text[len(text)-length:]
}
