package domain

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultCity подставляется, когда у объявления не указан город
const DefaultCity = "Rosario"

var displayLanguage = language.MustParse("es-AR")

// FormatNumber округляет число и форматирует его с разделителями разрядов es-AR (50.000)
func FormatNumber(value float64) string {
	p := message.NewPrinter(displayLanguage)
	return p.Sprintf("%d", int64(math.Round(value)))
}

// Capitalize переводит в верхний регистр только первую букву
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return cases.Upper(displayLanguage).String(string(r)) + s[size:]
}

// NormalizeAddress приводит адрес к ключу для кэша геокодирования:
// нижний регистр, без диакритики, с одиночными пробелами.
func NormalizeAddress(address string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, address)
	if err != nil {
		stripped = address
	}
	lowered := cases.Lower(displayLanguage).String(stripped)
	return strings.Join(strings.Fields(lowered), " ")
}

// GeocodingQuery собирает строку "direccion, barrio, ciudad" из непустых частей.
// Пустая строка означает, что геокодировать нечего.
func GeocodingQuery(l Listing) string {
	if strings.TrimSpace(l.Address) == "" {
		return ""
	}
	parts := []string{strings.TrimSpace(l.Address)}
	if n := strings.TrimSpace(l.Neighborhood); n != "" {
		parts = append(parts, n)
	}
	city := strings.TrimSpace(l.City)
	if city == "" {
		city = DefaultCity
	}
	parts = append(parts, city)
	return strings.Join(parts, ", ")
}
