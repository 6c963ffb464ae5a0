package util

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaces       = regexp.MustCompile(` +`)
	slugDashes       = regexp.MustCompile(`-+`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// GenerateSlug строит URL-slug из названия категории
// "Food & Nightlife" -> "food-nightlife"
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return slug
}

// DeriveSlug - упрощенный slug, которым клиент иногда передает категорию в фильтре:
// нижний регистр, пробельные последовательности заменяются на "-"
func DeriveSlug(value string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "-")
}
