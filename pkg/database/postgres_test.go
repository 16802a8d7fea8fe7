package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgreSQLOptions_ConvertToConnectionURL(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc     string
		args     PostgreSQLOptions
		expected string
	}{
		{
			desc: "positive: connection url without port",
			args: PostgreSQLOptions{
				User:     "admin",
				Password: "secret",
				Database: "options",
				Host:     "localhost",
				SSLMode:  "disable",
			},
			expected: "user=admin password=secret dbname=options host=localhost sslmode=disable",
		},
		{
			desc: "positive: connection url with port",
			args: PostgreSQLOptions{
				User:     "admin",
				Password: "secret",
				Database: "options",
				Host:     "localhost",
				Port:     "5433",
				SSLMode:  "disable",
			},
			expected: "user=admin password=secret dbname=options host=localhost sslmode=disable port=5433",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.args.convertToConnectionURL())
		})
	}
}
