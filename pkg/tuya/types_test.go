package tuya

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringAcceptsAnyScalar(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"true"`, "true"},
		{"integer", `42`, "42"},
		{"float", `3.5`, "3.5"},
		{"boolean", `false`, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, string(f))
		})
	}

	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"nested":1}`), &f))
}

func TestMillisRoundTrip(t *testing.T) {
	var m Millis
	require.NoError(t, json.Unmarshal([]byte(`1756272000000`), &m))
	assert.Equal(t, int64(1756272000000), m.UnixMilli())
	assert.Equal(t, "1756272000000", m.Param())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "1756272000000", string(out))
}

func TestResponseEnvelope(t *testing.T) {
	raw := `{"success":false,"code":1010,"msg":"token invalid","t":1756272000000}`

	var resp Response[logPage]
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 1010, resp.Code)
	assert.Equal(t, "token invalid", resp.Msg)
}
