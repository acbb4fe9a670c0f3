package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		start     Config
		expected  Config
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "15",
				"-i", "issuer", "-n", "2", "-o", "http://collector:4317", "-l", "debug",
			},
			expected: Config{
				EndpointAddrGRPC:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 15 * time.Minute,
				TokenIssuer:                 "issuer",
				HashConcurrency:             2,
				OTelEndpoint:                "http://collector:4317",
				LogLevel:                    "debug",
			},
		},
		{
			name:     "ttl untouched without -t",
			args:     []string{"-d", "db"},
			start:    Config{AccessTokenValidityDuration: 90 * time.Second},
			expected: Config{DatabaseDSN: "db", AccessTokenValidityDuration: 90 * time.Second},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-c", "conf.json", "-x", "1", "-s", "k"},
			expected: Config{SecretKey: "k"},
		},
		{
			name:      "bad int",
			args:      []string{"-n", "lots"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.start
			err := parseFlags(&config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
