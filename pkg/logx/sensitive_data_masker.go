package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// HTTP headers.
	regexp.MustCompile("(?is)(Api-Key: ).+?(\r)"),
	regexp.MustCompile("(?is)(Api-Secret: ).+?(\r)"),
	regexp.MustCompile("(?s)(X-Telegram-Bot-Api-Secret-Token: ).+?(\r)"),
	// Bot token inside Telegram API URLs.
	regexp.MustCompile(`(/bot)\d+:[A-Za-z0-9_-]+(/)`),
	// JSON fields.
	regexp.MustCompile(`(?s)("api_key":\s?").+?(")`),
	regexp.MustCompile(`(?s)("api_secret":\s?").+?(")`),
	regexp.MustCompile(`(?s)("[Pp]assword":\s?").+?(")`),
	regexp.MustCompile(`(?s)("email":\s?").+?(")`),
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
