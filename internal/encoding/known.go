package encoding

import (
	"strconv"
	"strings"

	"github.com/oesand/hearth/specs"
)

// preference orders the supported encodings when a client weights them equally.
var preference = [...]string{
	specs.ContentEncodingBrotli,
	specs.ContentEncodingGzip,
	specs.ContentEncodingDeflate,
}

func IsKnownEncoding(contentEncoding string) bool {
	switch contentEncoding {
	case specs.ContentEncodingGzip, specs.ContentEncodingDeflate, specs.ContentEncodingBrotli:
		return true
	}
	return false
}

// Negotiate picks the supported encoding with the highest weight in an
// Accept-Encoding value, or "" when none is acceptable.
// A "*" entry stands for every supported encoding not listed explicitly.
func Negotiate(acceptEncoding string) string {
	if strings.TrimSpace(acceptEncoding) == "" {
		return ""
	}

	weights := make(map[string]float64, len(preference))
	wildcard := -1.0
	for _, part := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(part, ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		weight := 1.0
		if key, value, ok := strings.Cut(strings.TrimSpace(params), "="); ok && strings.TrimSpace(key) == "q" {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				continue
			}
			weight = parsed
		}

		if name == "*" {
			wildcard = weight
		} else if IsKnownEncoding(name) {
			weights[name] = weight
		}
	}

	selected, best := "", 0.0
	for _, name := range preference {
		weight, has := weights[name]
		if !has {
			weight = wildcard
		}
		if weight > best {
			selected, best = name, weight
		}
	}
	return selected
}
