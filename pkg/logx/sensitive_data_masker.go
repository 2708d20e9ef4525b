package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// Session cookies, both in request Cookie headers and Set-Cookie replies.
	regexp.MustCompile(`(?s)(steamLoginSecure=)[^;\r\n]+(;|\r|$)`),
	regexp.MustCompile(`(?s)(sessionid=)[^;\r\n]+(;|\r|$)`),
	regexp.MustCompile(`(?s)(steamRefresh_steam=)[^;\r\n]+(;|\r|$)`),
	// Web API key in query strings.
	regexp.MustCompile(`([?&]key=)[0-9A-Fa-f]+(&|\s|$)`),
	// JSON fields.
	regexp.MustCompile(`(?s)("[Pp]assword":\s?").+?(")`),
	regexp.MustCompile(`(?s)("access_token":\s?").+?(")`),
	regexp.MustCompile(`(?s)("refresh_token":\s?").+?(")`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}

// NopSensitiveDataMasker leaves dumps untouched. Used in tests and when
// debug dumps are routed to a trusted sink.
type NopSensitiveDataMasker struct{}

func NewNopSensitiveDataMasker() NopSensitiveDataMasker {
	return NopSensitiveDataMasker{}
}

func (NopSensitiveDataMasker) Mask(input []byte) []byte {
	return input
}
