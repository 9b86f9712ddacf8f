package specs

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// DefaultScheme is assigned to URIs parsed without a scheme.
const DefaultScheme = "http"

// MustParseUri is a helper function that parses a URI string and panics if it fails.
func MustParseUri(raw string) Uri {
	uri, err := ParseUri(raw)
	if err != nil {
		panic(err)
	}
	return uri
}

// ParseUri decomposes raw into its components.
//
// Components are stored as they appear in raw, no unescaping is applied.
// A scheme is a leading token followed by ":". An authority is only
// recognized after "//", anything else before the query is the path.
// A missing scheme defaults to [DefaultScheme].
func ParseUri(raw string) (Uri, error) {
	// invalid control character
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < ' ' || c == 0x7f {
			return Uri{}, invalidUri("invalid control character in url")
		}
	}

	uri := Uri{scheme: DefaultScheme}
	rest := raw

	// Parse fragment
	if before, fragment, ok := strings.Cut(rest, "#"); ok {
		rest = before
		uri.fragment = fragment
	}

	// Parse query
	if before, query, ok := strings.Cut(rest, "?"); ok {
		rest = before
		uri.query = query
	}

	// Parse scheme
	if strings.HasPrefix(rest, ":") {
		return Uri{}, invalidUri("missing scheme")
	}
	if i := strings.IndexByte(rest, ':'); i > 0 && isSchemeToken(rest[:i]) {
		uri.scheme = rest[:i]
		rest = rest[i+1:]
	}

	hasAuthority := false
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		hasAuthority = true
	}

	if hasAuthority {
		authority := rest
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			authority, rest = rest[:i], rest[i:]
		} else {
			rest = ""
		}
		if err := uri.parseAuthority(authority); err != nil {
			return Uri{}, err
		}
		if uri.host == "" {
			return Uri{}, invalidUri("host required when authority passed")
		}
	}
	uri.path = rest

	for _, part := range [...]string{uri.user, uri.password, uri.path, uri.query, uri.fragment} {
		if !validEscapes(part) {
			return Uri{}, invalidUri("invalid escape sequence")
		}
	}

	return uri, nil
}

func (uri *Uri) parseAuthority(authority string) error {
	// Parse username & password
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		raw := authority[:i]
		authority = authority[i+1:]
		if username, password, ok := strings.Cut(raw, ":"); ok {
			uri.user = username
			uri.password = password
		} else {
			uri.user = raw
		}

		if uri.user == "" {
			return invalidUri("username must not be empty when passed")
		}
	}

	// Parse host:port
	portIndex := strings.LastIndexByte(authority, ':')
	if strings.HasPrefix(authority, "[") {
		i := strings.IndexByte(authority, ']')
		if i < 0 {
			return invalidUri("missing ']' in host")
		}
		if i > portIndex {
			portIndex = -1
		}
	} else if strings.Contains(authority, "]") {
		return invalidUri("missing '[' in host")
	}

	if portIndex < 0 {
		uri.host = authority
		return nil
	}

	uri.host = authority[:portIndex]
	if port := authority[portIndex+1:]; port != "" {
		portNum, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return invalidUri("cannot parse port %q", port)
		}
		uri.port = uint16(portNum)
	}
	return nil
}

func invalidUri(format string, a ...any) error {
	return NewOpError("url", "%w: "+format, append([]any{ErrInvalidUrl}, a...)...)
}

func isSchemeToken(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' ||
			(i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.')) {
			continue
		}
		return false
	}
	return true
}

func validEscapes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// Uri is an immutable URI value.
//
// Port 0 means the port is not set. Each With method returns a copy
// that differs from the receiver in exactly one component.
type Uri struct {
	scheme, user, password, host string
	path, query, fragment        string
	port                         uint16
}

func (uri Uri) Scheme() string   { return uri.scheme }
func (uri Uri) User() string     { return uri.user }
func (uri Uri) Password() string { return uri.password }
func (uri Uri) Host() string     { return uri.host }
func (uri Uri) Port() uint16     { return uri.port }
func (uri Uri) Path() string     { return uri.path }
func (uri Uri) Query() string    { return uri.query }
func (uri Uri) Fragment() string { return uri.fragment }

// UserInfo returns "user[:password]", or "" when no user is set.
func (uri Uri) UserInfo() string {
	if uri.user == "" {
		return ""
	}
	if uri.password != "" {
		return uri.user + ":" + uri.password
	}
	return uri.user
}

// Authority returns "[userinfo@]host[:port]", omitting absent parts.
func (uri Uri) Authority() string {
	var builder strings.Builder
	if info := uri.UserInfo(); info != "" {
		builder.WriteString(info)
		builder.WriteByte('@')
	}
	builder.WriteString(uri.host)
	if uri.port > 0 {
		builder.WriteByte(':')
		builder.WriteString(strconv.FormatUint(uint64(uri.port), 10))
	}
	return builder.String()
}

// HostHeader returns the host in its ASCII form followed by ":port"
// when a port is set, suitable for a Host header.
func (uri Uri) HostHeader() string {
	host := uri.host
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	if uri.port > 0 {
		return host + ":" + strconv.FormatUint(uint64(uri.port), 10)
	}
	return host
}

// QueryParams decodes the query with form-encoding rules.
// The last value wins for repeated keys, undecodable pairs are skipped.
func (uri Uri) QueryParams() map[string]string {
	values, _ := url.ParseQuery(uri.query)
	params := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[len(vals)-1]
		}
	}
	return params
}

func (uri Uri) WithScheme(scheme string) Uri {
	uri.scheme = scheme
	return uri
}

func (uri Uri) WithUserInfo(user, password string) Uri {
	uri.user = user
	uri.password = password
	return uri
}

func (uri Uri) WithHost(host string) Uri {
	uri.host = host
	return uri
}

func (uri Uri) WithPort(port uint16) Uri {
	uri.port = port
	return uri
}

func (uri Uri) WithPath(path string) Uri {
	uri.path = path
	return uri
}

func (uri Uri) WithQuery(query string) Uri {
	uri.query = query
	return uri
}

func (uri Uri) WithFragment(fragment string) Uri {
	uri.fragment = fragment
	return uri
}

// String returns "scheme:[//[userinfo@]host[:port]]path[?query][#fragment]".
// The "//" authority part is written only when a host is set.
func (uri Uri) String() string {
	var builder strings.Builder
	builder.WriteString(uri.scheme)
	builder.WriteByte(':')
	if uri.host != "" {
		builder.WriteString("//")
		builder.WriteString(uri.Authority())
	}
	builder.WriteString(uri.path)
	if uri.query != "" {
		builder.WriteByte('?')
		builder.WriteString(uri.query)
	}
	if uri.fragment != "" {
		builder.WriteByte('#')
		builder.WriteString(uri.fragment)
	}
	return builder.String()
}
