package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// transliterations folds the diacritics that appear in catalog names
// (e.g. "Kāñjīvaram", "Banārasi") to plain ASCII.
var transliterations = strings.NewReplacer(
	"ā", "a", "á", "a", "à", "a", "â", "a",
	"ī", "i", "í", "i", "ì", "i",
	"ū", "u", "ú", "u", "ù", "u",
	"ē", "e", "é", "e", "è", "e",
	"ō", "o", "ó", "o", "ò", "o",
	"ñ", "n", "ṇ", "n", "ṅ", "n",
	"ṭ", "t", "ḍ", "d", "ṣ", "s", "ś", "s", "ṛ", "r", "ḥ", "h", "ṁ", "m",
	"&", " and ",
)

// Generate creates a URL-friendly slug from name.
//
//	"Kāñjīvaram Silk Saree" → "kanjivaram-silk-saree"
//	"Cotton & Linen Kurta"  → "cotton-and-linen-kurta"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = transliterations.Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
