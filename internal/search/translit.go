package search

import "strings"

// latinToCyrillic and cyrillicToLatin are visually-similar keyboard-layout
// mappings (same physical key on a ЙЦУКЕН/QWERTY layout), not phonetic
// transliteration — the original scraper generates variants this way to
// catch a user typing a Russian term with the wrong keyboard layout active,
// the single most common reason a keyword silently returns zero results.
var latinToCyrillic = map[rune]rune{
	'q': 'й', 'w': 'ц', 'e': 'у', 'r': 'к', 't': 'е', 'y': 'н', 'u': 'г',
	'i': 'ш', 'o': 'щ', 'p': 'з', 'a': 'ф', 's': 'ы', 'd': 'в', 'f': 'а',
	'g': 'п', 'h': 'р', 'j': 'о', 'k': 'л', 'l': 'д', 'z': 'я', 'x': 'ч',
	'c': 'с', 'v': 'м', 'b': 'и', 'n': 'т', 'm': 'ь',
}

var cyrillicToLatin = invert(latinToCyrillic)

func invert(m map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Variants returns keyword plus up to two transliterated alternatives: the Latin-keyboard-typed-as-Cyrillic reading and the
// Cyrillic-keyboard-typed-as-Latin reading. A keyword with no matching runes
// under either mapping yields no variants beyond itself.
func Variants(keyword string) []string {
	variants := []string{keyword}

	if v := remap(keyword, latinToCyrillic); v != "" && v != keyword {
		variants = append(variants, v)
	}
	if v := remap(keyword, cyrillicToLatin); v != "" && v != keyword {
		variants = append(variants, v)
	}

	if len(variants) > 3 {
		variants = variants[:3]
	}
	return variants
}

func remap(s string, table map[rune]rune) string {
	var sb strings.Builder
	matched := false
	for _, r := range s {
		lower := unicodeToLower(r)
		if mapped, ok := table[lower]; ok {
			if r != lower {
				mapped = unicodeToUpper(mapped)
			}
			sb.WriteRune(mapped)
			matched = true
			continue
		}
		sb.WriteRune(r)
	}
	if !matched {
		return ""
	}
	return sb.String()
}

func unicodeToLower(r rune) rune {
	return []rune(strings.ToLower(string(r)))[0]
}

func unicodeToUpper(r rune) rune {
	return []rune(strings.ToUpper(string(r)))[0]
}
