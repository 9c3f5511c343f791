package sanitize

import "strings"

const fallbackFilename = "attachment"

const maxFilenameLength = 200

// Filename reduces an attacker-controlled attachment name to a safe, bounded,
// traversal-free name. It never fails and is idempotent.
func Filename(name string) string {
	if strings.TrimSpace(name) == "" {
		return fallbackFilename
	}

	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}

	// Leading dots are dropped so neither hidden files nor leftover ".."
	// fragments survive once the slashes are gone.
	name = strings.TrimLeft(name, ".")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name = b.String()

	if len(name) > maxFilenameLength {
		name = name[:maxFilenameLength]
	}

	if name == "" {
		return fallbackFilename
	}

	return name
}
