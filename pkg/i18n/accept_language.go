package i18n

import "golang.org/x/text/language"

// maxHeaderLength guards against oversized Accept-Language headers.
const maxHeaderLength = 4096

// Negotiate returns the supported locale best matching the
// Accept-Language header. Quality values are honored; region
// variants fall back to their base language ("en-US" matches "en").
// With no match, an empty header, or a malformed one, the first
// supported locale wins.
func Negotiate(header string, supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	if header == "" {
		return supported[0]
	}
	if len(header) > maxHeaderLength {
		header = header[:maxHeaderLength]
	}

	// Unparsable entries are skipped, so the matcher's index is into
	// locales, not supported.
	tags := make([]language.Tag, 0, len(supported))
	locales := make([]string, 0, len(supported))
	for _, loc := range supported {
		tag, err := language.Parse(loc)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		locales = append(locales, loc)
	}
	if len(tags) == 0 {
		return supported[0]
	}

	preferred, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(preferred) == 0 {
		return supported[0]
	}

	_, index, conf := language.NewMatcher(tags).Match(preferred...)
	if conf == language.No {
		return supported[0]
	}

	return locales[index]
}
