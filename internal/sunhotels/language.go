package sunhotels

import "strings"

// DefaultLanguage is the upstream code substituted for locales the
// upstream does not support.
const DefaultLanguage = "en"

// supportedLanguages lists the upstream's documented language codes.
var supportedLanguages = map[string]bool{
	"en": true,
	"de": true,
	"es": true,
	"fr": true,
	"it": true,
	"pt": true,
	"pl": true,
	"ru": true,
	"sv": true,
	"no": true,
	"da": true,
	"fi": true,
}

// localeOverrides maps UI locales without upstream support to the code
// used in their place. Arabic and Turkish storefronts fall back to
// English content.
var localeOverrides = map[string]string{
	"ar": DefaultLanguage,
	"tr": DefaultLanguage,
}

// MapLanguage maps a UI locale to an upstream language code. The
// mapping is total: every input resolves to some supported code, never
// to an error or the unmapped input.
func MapLanguage(locale string) string {
	code := strings.ToLower(strings.TrimSpace(locale))

	// Region suffixes ("en-US", "pt_BR") carry no meaning upstream.
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}

	if mapped, ok := localeOverrides[code]; ok {
		return mapped
	}
	if supportedLanguages[code] {
		return code
	}
	return DefaultLanguage
}
