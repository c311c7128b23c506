// Utilities for reading credentials out of a browser "Copy as cURL" command.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookieRegex = regexp.MustCompile(`(?:-b|--cookie)\s+'([^']+)'|(?:-b|--cookie)\s+"([^"]+)"`)
	curlURLRegex    = regexp.MustCompile(`'(https?://[^']+)'|"(https?://[^"]+)"|(https?://\S+)`)
)

// uinCookieKeys lists cookie names that carry the account number, in lookup order.
var uinCookieKeys = []string{"uin", "qqmusic_uin", "p_uin", "wxuin"}

// CurlRequest holds the URL, headers and cookie of a parsed cURL command.
type CurlRequest struct {
	URL     string
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and parses it.
func ParseCurlFile(path string) (*CurlRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(string(content))
}

// ParseCurlCommand parses a cURL command copied from browser DevTools.
//
// The cookie is taken from -b/--cookie when present, otherwise from a "cookie:" header.
// The cookie header itself is never included in Headers.
func ParseCurlCommand(command string) (*CurlRequest, error) {
	command = strings.ReplaceAll(command, "\\\r\n", " ")
	command = strings.ReplaceAll(command, "\\\n", " ")

	req := &CurlRequest{Headers: make(map[string]string)}

	if m := curlURLRegex.FindStringSubmatch(command); m != nil {
		req.URL = firstGroup(m)
	}

	var headerCookie string
	for _, m := range curlHeaderRegex.FindAllStringSubmatch(command, -1) {
		key, value, ok := strings.Cut(firstGroup(m), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if headerCookie == "" {
				headerCookie = value
			}
			continue
		}
		req.Headers[key] = value
	}

	if m := curlCookieRegex.FindStringSubmatch(command); m != nil {
		req.Cookie = firstGroup(m)
	} else {
		req.Cookie = headerCookie
	}

	if len(req.Headers) == 0 && req.Cookie == "" {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}

	return req, nil
}

// ParseCookie splits a "k1=v1; k2=v2" cookie string into a map. Later duplicates win.
func ParseCookie(cookie string) map[string]string {
	values := make(map[string]string)
	for _, part := range strings.Split(cookie, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		values[key] = strings.TrimSpace(value)
	}
	return values
}

// UINFromCookie extracts the QQ account number from a y.qq.com cookie.
//
// Values such as "o0012345678" are normalized to "12345678". Returns "" when no uin cookie is set.
func UINFromCookie(cookie string) string {
	values := ParseCookie(cookie)
	for _, key := range uinCookieKeys {
		uin := strings.TrimLeft(strings.TrimPrefix(values[key], "o"), "0")
		if uin != "" {
			return uin
		}
	}
	return ""
}

func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
