package helpers

import (
	"net/url"
	"strings"
)

// HasScheme - проверяет наличие протокола
func HasScheme(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// NormalizeURL - дописывает https:// к адресу без протокола
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || HasScheme(u) {
		return u
	}
	return "https://" + u
}

// IsSiteRoot - адрес указывает на корень сайта, а не на конкретный документ
func IsSiteRoot(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.TrimRight(u.Path, "/")
	return path == "" || path == "/index.html" || path == "/index.htm"
}

// Origin - схема и хост адреса: https://example.com
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + u.Host, nil
}
