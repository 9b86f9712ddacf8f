package parsing

import "strings"

const httpVersionPrefix = "HTTP/"

// ParseRequestLine parses headline: GET /index.html HTTP/1.0
//
// The line must hold exactly three space separated tokens. The returned
// version has the "HTTP/" prefix removed, the method is returned as sent.
func ParseRequestLine(line string) (method, target, version string, ok bool) {
	parts := strings.Split(strings.TrimSpace(line), " ")
	if len(parts) != 3 {
		return
	}
	for _, part := range parts {
		if part == "" {
			return
		}
	}

	method, target = parts[0], parts[1]
	version = strings.TrimPrefix(parts[2], httpVersionPrefix)
	if version == "" {
		return "", "", "", false
	}
	return method, target, version, true
}

// SplitHead separates a raw request head into the request line, the header
// lines up to the first empty line, and whatever follows that empty line.
// Lines may end with "\n" or "\r\n".
func SplitHead(raw string) (requestLine string, headerLines []string, rest string) {
	requestLine, raw, _ = strings.Cut(raw, "\n")
	requestLine = strings.TrimRight(requestLine, "\r")

	for raw != "" {
		var line string
		line, raw, _ = strings.Cut(raw, "\n")
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			return requestLine, headerLines, raw
		}
		headerLines = append(headerLines, line)
	}
	return requestLine, headerLines, ""
}
