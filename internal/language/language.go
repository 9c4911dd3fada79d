// Package language holds the fixed table of languages the API can teach and
// the validation rule every endpoint applies to a requested language code.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// Default is the language used when a request does not name one.
const Default = "en-US"

// ErrUnsupported is returned when a language code is not in the supported table.
var ErrUnsupported = errors.New("unsupported language")

// Language is a BCP-47 code together with its English display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// supported is ordered; the order is part of the client-facing error message.
var supported = []Language{
	{Code: "en-US", Name: "English"},
	{Code: "es-ES", Name: "Spanish"},
	{Code: "fr-FR", Name: "French"},
	{Code: "de-DE", Name: "German"},
	{Code: "it-IT", Name: "Italian"},
	{Code: "pt-BR", Name: "Portuguese"},
	{Code: "ja-JP", Name: "Japanese"},
	{Code: "ko-KR", Name: "Korean"},
	{Code: "zh-CN", Name: "Mandarin Chinese"},
	{Code: "ru-RU", Name: "Russian"},
	{Code: "ar-SA", Name: "Arabic"},
	{Code: "tl-PH", Name: "Tagalog"},
	{Code: "hi-IN", Name: "Hindi"},
	{Code: "th-TH", Name: "Thai"},
	{Code: "vi-VN", Name: "Vietnamese"},
	{Code: "nl-NL", Name: "Dutch"},
	{Code: "pl-PL", Name: "Polish"},
	{Code: "tr-TR", Name: "Turkish"},
	{Code: "sv-SE", Name: "Swedish"},
	{Code: "no-NO", Name: "Norwegian"},
}

var byCode = func() map[string]Language {
	m := make(map[string]Language, len(supported))
	for _, l := range supported {
		m[l.Code] = l
	}
	return m
}()

// Supported returns a copy of the supported language table in display order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Codes returns the supported language codes in display order.
func Codes() []string {
	codes := make([]string, len(supported))
	for i, l := range supported {
		codes[i] = l.Code
	}
	return codes
}

// IsSupported reports whether code is in the supported table. Matching is exact.
func IsSupported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// Name returns the display name for code.
func Name(code string) (string, bool) {
	l, ok := byCode[code]
	return l.Name, ok
}

// NameOr returns the display name for code, or fallback when code is unknown.
func NameOr(code, fallback string) string {
	if name, ok := Name(code); ok {
		return name
	}
	return fallback
}

// Validate returns an error wrapping ErrUnsupported if code is not supported.
func Validate(code string) error {
	if !IsSupported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	return nil
}

// UnsupportedMessage is the client-facing explanation for ErrUnsupported.
func UnsupportedMessage() string {
	return "Unsupported language. Supported: " + strings.Join(Codes(), ", ")
}
