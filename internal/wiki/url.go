package wiki

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultLanguage is used when a URL does not name a wiki
const DefaultLanguage = "en"

var languageHost = regexp.MustCompile(`^https?://([a-z]{2,3}(?:-[a-z]+)?)\.(?:m\.)?wikipedia\.org`)

// Ref names an article on a specific language wiki
type Ref struct {
	Title string
	Lang  string
}

// URL returns the article's canonical URL
func (r Ref) URL() string {
	return ArticleURL(r.Lang, r.Title)
}

// ParseRef accepts an article URL or a bare title. Only a Wikipedia host
// overrides lang; everything else resolves against lang, or
// DefaultLanguage when lang is empty.
func ParseRef(raw, lang string) Ref {
	raw = strings.TrimSpace(raw)
	if lang == "" {
		lang = DefaultLanguage
	}
	if m := languageHost.FindStringSubmatch(raw); m != nil {
		lang = m[1]
	}
	return Ref{Title: TitleFromURL(raw), Lang: lang}
}

// TitleFromURL extracts the article title from a /wiki/ URL. Percent
// escapes are decoded and underscores become spaces, matching the titles
// the API returns. Strings without /wiki/ are returned unchanged.
func TitleFromURL(raw string) string {
	i := strings.LastIndex(raw, "/wiki/")
	if i < 0 {
		return raw
	}
	title := raw[i+len("/wiki/"):]
	if j := strings.IndexAny(title, "?#"); j >= 0 {
		title = title[:j]
	}
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}
	return strings.ReplaceAll(title, "_", " ")
}

// LanguageFromURL returns the language subdomain of a Wikipedia URL
func LanguageFromURL(raw string) string {
	if m := languageHost.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return DefaultLanguage
}

// ArticleURL builds the URL for a title on the lang wiki
func ArticleURL(lang, title string) string {
	if lang == "" {
		lang = DefaultLanguage
	}
	return "https://" + lang + ".wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}
