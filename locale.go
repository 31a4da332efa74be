package formula

import (
	"strconv"

	"golang.org/x/text/language"
)

// Locale selects the decimal separator and the function-argument separator
// used when reading formula text, mirroring the way a CultureInfo governs
// number parsing in locale-sensitive calculators. The zero value has no
// separators set; use Invariant for '.' decimal, ',' argument separator.
type Locale struct {
	// DecimalSeparator separates the integer and fractional parts of a
	// number literal.
	DecimalSeparator rune
	// ArgumentSeparator separates arguments in a function call.
	ArgumentSeparator rune
	// tag is the canonicalized BCP 47 tag this locale was resolved from, if
	// any. It is empty for hand-built locales.
	tag string
}

// Invariant is the default locale: '.' for decimals, ',' for argument
// separators.
var Invariant = Locale{DecimalSeparator: '.', ArgumentSeparator: ','}

// commaDecimal is the locale used by cultures that write decimals with a
// comma, and so require semicolons to separate function arguments.
var commaDecimal = Locale{DecimalSeparator: ',', ArgumentSeparator: ';'}

// localePresets maps a handful of common BCP 47 language tags to their
// numeric conventions, in the style of a small built-in CultureInfo table.
// A tag not listed here resolves through its base language if that is
// listed (so "de-AT" uses the "de" entry), and to Invariant otherwise.
var localePresets = map[string]Locale{
	"en-US": Invariant,
	"en-GB": Invariant,
	"en":    Invariant,
	"de-DE": commaDecimal,
	"de":    commaDecimal,
	"fr-FR": commaDecimal,
	"fr":    commaDecimal,
	"es-ES": commaDecimal,
	"it-IT": commaDecimal,
	"ru-RU": commaDecimal,
	"pt-BR": commaDecimal,
}

// ParseLocale resolves a BCP 47 locale tag (e.g. "en-US", "de-DE") to its
// Locale, canonicalizing the tag with golang.org/x/text/language so that
// case and script variants ("DE-de", "de_DE") resolve the same as their
// canonical form. Unknown tags fail with a ConfigError; a well-formed tag
// that is not listed resolves through its base language if that is listed,
// and to Invariant otherwise.
func ParseLocale(tag string) (Locale, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Locale{}, &ConfigError{Option: "locale", Value: tag, Msg: "not a valid BCP 47 tag: " + err.Error()}
	}
	canon := t.String()
	if l, ok := localePresets[canon]; ok {
		l.tag = canon
		return l, nil
	}
	base, _ := t.Base()
	if l, ok := localePresets[base.String()]; ok {
		l.tag = canon
		return l, nil
	}
	l := Invariant
	l.tag = canon
	return l, nil
}

// String returns the locale's BCP 47 tag if it was resolved via ParseLocale,
// or a description of its separators otherwise.
func (l Locale) String() string {
	if l.tag != "" {
		return l.tag
	}
	return "locale(decimal=" + strconv.QuoteRune(l.DecimalSeparator) + ", arg=" + strconv.QuoteRune(l.ArgumentSeparator) + ")"
}
