package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panastock-api/internal/application/dto"
)

func TestTimestamp_FormasISO(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{`"2026-08-15T10:30:00Z"`, time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)},
		{`"2026-08-15T10:30:00.250Z"`, time.Date(2026, 8, 15, 10, 30, 0, 250_000_000, time.UTC)},
		{`"2026-08-15T10:30:00-05:00"`, time.Date(2026, 8, 15, 10, 30, 0, 0, time.FixedZone("", -5*3600))},
		{`"2026-08-15T10:30:00"`, time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)},
		{`"2026-08-15"`, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		var ts dto.Timestamp
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &ts), tc.raw)
		assert.True(t, ts.Time.Equal(tc.want), "raw %s: got %s", tc.raw, ts.Time)
	}
}

func TestTimestamp_DocumentoLegado(t *testing.T) {
	var ts dto.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`{"_seconds": 1755254400, "_nanoseconds": 500000000}`), &ts))
	assert.True(t, ts.Time.Equal(time.Unix(1755254400, 500000000)))

	// _nanoseconds es opcional.
	require.NoError(t, json.Unmarshal([]byte(`{"_seconds": 1755254400}`), &ts))
	assert.True(t, ts.Time.Equal(time.Unix(1755254400, 0)))
}

func TestTimestamp_Invalidos(t *testing.T) {
	for _, raw := range []string{`"15/08/2026"`, `"ayer"`, `{"_nanoseconds": 5}`, `{}`} {
		var ts dto.Timestamp
		assert.Error(t, json.Unmarshal([]byte(raw), &ts), raw)
	}
}

func TestTimestamp_NullYCero(t *testing.T) {
	var ts dto.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.Time.IsZero())

	out, err := json.Marshal(dto.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestTimestamp_MarshalRFC3339(t *testing.T) {
	ts := dto.Timestamp{Time: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)}
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-15T10:30:00Z"`, string(out))
}
