package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testAPIAddress          = "localhost:8080"
	testAPIToken            = "11235813213455"
	testClientAllowInsecure = true
)

func requireBaseClient(t *testing.T, baseClient *baseClient) {
	require.NotNil(t, baseClient)
	require.Equal(t, testAPIAddress, baseClient.apiAddress)
	require.Equal(t, testAPIToken, baseClient.apiToken)
	require.NotNil(t, baseClient.httpClient)
}

func TestParseErrorBody(t *testing.T) {
	testCases := []struct {
		name       string
		body       []byte
		assertions func(t *testing.T, detail string, fields map[string][]string)
	}{
		{
			name: "detail only",
			body: []byte(`{"detail": "no way"}`),
			assertions: func(
				t *testing.T,
				detail string,
				fields map[string][]string,
			) {
				require.Equal(t, "no way", detail)
				require.Nil(t, fields)
			},
		},
		{
			name: "field messages only",
			body: []byte(`{"email": ["already registered"]}`),
			assertions: func(
				t *testing.T,
				detail string,
				fields map[string][]string,
			) {
				require.Empty(t, detail)
				require.Equal(
					t,
					map[string][]string{"email": {"already registered"}},
					fields,
				)
			},
		},
		{
			name: "not json",
			body: []byte("<html>definitely not json</html>"),
			assertions: func(
				t *testing.T,
				detail string,
				fields map[string][]string,
			) {
				require.Empty(t, detail)
				require.Nil(t, fields)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			detail, fields := parseErrorBody(testCase.body)
			testCase.assertions(t, detail, fields)
		})
	}
}
