package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// bibliographic maps ISO 639-2/B codes, which x/text does not parse, to their
// terminology equivalents.
var bibliographic = map[string]string{
	"alb": "sqi",
	"arm": "hye",
	"baq": "eus",
	"bur": "mya",
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"geo": "kat",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"mac": "mkd",
	"mao": "mri",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"tib": "bod",
	"wel": "cym",
}

// named lists languages recognized by their English name in stream tags.
var named = []string{
	"ar", "cs", "da", "de", "el", "en", "es", "fi", "fr", "he", "hi", "hu",
	"it", "ja", "ko", "nl", "no", "pl", "pt", "ru", "sv", "th", "tr", "uk", "zh",
}

var byWord map[string]language.Base

func init() {
	names := display.English.Languages()
	byWord = make(map[string]language.Base, len(named))
	for _, code := range named {
		base := language.MustParseBase(code)
		byWord[strings.ToLower(names.Name(base))] = base
	}
}

func clean(code string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(code, "\u0000", "")))
}

// parse resolves a code, English name, or BCP 47 tag to its base language.
func parse(code string) (language.Base, bool) {
	code = clean(code)
	if code == "" {
		return language.Base{}, false
	}
	if base, ok := byWord[code]; ok {
		return base, true
	}
	if alias, ok := bibliographic[code]; ok {
		code = alias
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Base{}, false
	}
	base, confidence := tag.Base()
	if confidence == language.No || base.String() == "und" {
		return language.Base{}, false
	}
	return base, true
}

// ToISO2 converts any recognized language code, name, or tag to ISO 639-1.
// Languages without a two-letter code return "". Unrecognized two-letter
// input passes through lowercased.
func ToISO2(code string) string {
	if base, ok := parse(code); ok {
		if s := base.String(); len(s) == 2 {
			return s
		}
		return ""
	}
	if c := clean(code); len(c) == 2 {
		return c
	}
	return ""
}

// ToISO3 converts any recognized language to ISO 639-2/T. Unrecognized
// three-letter input passes through; anything else is "und".
func ToISO3(code string) string {
	if base, ok := parse(code); ok {
		return base.ISO3()
	}
	if c := clean(code); len(c) == 3 {
		return c
	}
	return "und"
}

// DisplayName returns the English name of a language, "Unknown" for empty
// input, or the uppercased input when unrecognized.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if base, ok := parse(code); ok {
		if name := display.English.Languages().Name(base); name != "" {
			return name
		}
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Match reports whether a and b denote the same base language. Two-letter,
// three-letter, English-name, and region-qualified forms compare equal;
// unrecognized codes only match themselves case-insensitively. Empty input
// never matches.
func Match(a, b string) bool {
	ca, cb := clean(a), clean(b)
	if ca == "" || cb == "" {
		return false
	}
	baseA, okA := parse(ca)
	baseB, okB := parse(cb)
	if okA && okB {
		return baseA == baseB
	}
	return ca == cb
}

// ExtractFromTags returns the normalized language from stream metadata tags,
// checking the common key spellings in order.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"} {
		if value := clean(tags[key]); value != "" {
			return value
		}
	}
	return ""
}
