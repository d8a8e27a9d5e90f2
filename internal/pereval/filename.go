package pereval

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	tokenLength   = 10
	tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// SlotFileName builds the upload name for a staged image:
//
//	{slot+1}_{random token}_{transliterated title}.{ext}
//
// The numeric prefix is the only channel carrying slot identity through the
// upload round trip — the photo API has no slot field and re-derives
// placement from the filename, so the format must stay stable.
func SlotFileName(slot int, title, originalName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%d_%s_%s.%s", slot+1, randomToken(tokenLength), slugify(title), ext)
}

// randomToken returns n random characters from the base-36 alphabet
func randomToken(n int) string {
	raw := make([]byte, n)
	rand.Read(raw)

	out := make([]byte, n)
	for i, b := range raw {
		out[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(out)
}

// Russian letters with no single-rune Latin equivalent after folding
var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// slugify lowercases the title, transliterates Cyrillic, strips diacritics
// and drops everything outside [a-z0-9]
func slugify(s string) string {
	s = strings.ToLower(s)

	var translit strings.Builder
	for _, r := range s {
		if t, ok := cyrillic[r]; ok {
			translit.WriteString(t)
			continue
		}
		translit.WriteRune(r)
	}

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		translit.String(),
	)
	if err != nil {
		folded = translit.String()
	}

	var out strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out.WriteRune(r)
		}
	}
	return out.String()
}
