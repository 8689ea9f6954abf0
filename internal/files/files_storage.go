package files

import (
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Object keys look like companies/<company_id>/<purpose>/<uuid>-<filename>.
const keyRoot = "companies/"

func companyPrefix(companyID string) string {
	return keyRoot + companyID + "/"
}

func newKey(companyID string, purpose Purpose, filename string) string {
	return companyPrefix(companyID) + string(purpose) + "/" + uuid.NewString() + "-" + filename
}

// validKey rejects keys that could escape their prefix once resolved.
func validKey(key string) bool {
	if !strings.HasPrefix(key, keyRoot) || strings.Contains(key, "\\") {
		return false
	}
	return path.Clean(key) == key && !strings.Contains(key, "..")
}

// sanitizeFilename folds accents, keeps [A-Za-z0-9._-] and replaces the rest with '_'.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err == nil {
		name = folded
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if len(out) > 120 {
		out = out[len(out)-120:]
	}
	return out
}
