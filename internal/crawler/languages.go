package crawler

import "slices"

var languages = []string{
	"danish", "dutch", "english", "finnish", "french", "german", "greek", "hungarian",
	"italian", "japanese", "koreana", "norwegian", "polish", "portuguese", "brazilian",
	"romanian", "russian", "schinese", "spanish", "swedish", "tchinese", "thai",
	"turkish", "ukrainian", "czech",
}

// Languages lists the storefront languages search pages can be requested in.
func Languages() []string {
	return slices.Clone(languages)
}

// IsLanguage reports whether lang is a supported storefront language.
func IsLanguage(lang string) bool {
	return slices.Contains(languages, lang)
}
