package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bfmr_bot/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "API credential headers",
			input:  []byte("GET /api/v2/deals HTTP/1.1\r\nApi-Key: pub-123\r\nApi-Secret: sec-456\r\n\r\n"),
			output: []byte("GET /api/v2/deals HTTP/1.1\r\nApi-Key: [MASKED]\r\nApi-Secret: [MASKED]\r\n\r\n"),
		},
		{
			name:   "Upper case headers",
			input:  []byte("API-KEY: pub-123\r\nAPI-SECRET: sec-456\r\n"),
			output: []byte("API-KEY: [MASKED]\r\nAPI-SECRET: [MASKED]\r\n"),
		},
		{
			name:   "Bot token in URL",
			input:  []byte(`request to https://api.telegram.org/bot123456:AAE-x_y/sendMessage failed`),
			output: []byte(`request to https://api.telegram.org/bot[MASKED]/sendMessage failed`),
		},
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Stored credentials",
			input:  []byte(`{"api_key":"pub","api_secret":"sec","setup_date":"2024-01-01T00:00:00Z"}`),
			output: []byte(`{"api_key":"[MASKED]","api_secret":"[MASKED]","setup_date":"2024-01-01T00:00:00Z"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
