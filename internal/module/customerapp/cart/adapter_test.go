package cart

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawDraftResolvesFieldAliases(t *testing.T) {
	payload := `{
		"Province": "Western Cape",
		"Branch": "Cape Town CBD",
		"service": "60 Min Therapy",
		"StartUtc": "2026-09-10T09:00:00Z",
		"end_utc": "2026-09-10T10:00:00Z"
	}`

	var raw RawDraft
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	d := raw.Canonical()
	assert.Equal(t, "Western Cape", d.Province)
	assert.Equal(t, "Cape Town CBD", d.Branch)
	assert.Equal(t, time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC), d.StartAt)
	assert.Equal(t, time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC), d.EndAt)
}

func TestRawDraftCanonicalNameWinsOverAlias(t *testing.T) {
	payload := `{"branch": "Durban North", "Branch": "Cape Town CBD"}`

	var raw RawDraft
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	assert.Equal(t, "Durban North", raw.Branch)
}

func TestRawDraftServicesArrayFallback(t *testing.T) {
	payload := `{"services": ["Herbal Foot Soak (30 Min)", "60 Min Therapy"]}`

	var raw RawDraft
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	d := raw.Canonical()
	assert.Equal(t, "Herbal Foot Soak (30 Min)", d.Service)
}

func TestRawDraftServiceFieldWinsOverServicesArray(t *testing.T) {
	payload := `{"service": "60 Min Therapy", "services": ["Herbal Foot Soak (30 Min)"]}`

	var raw RawDraft
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	d := raw.Canonical()
	assert.Equal(t, "60 Min Therapy", d.Service)
}

func TestRawDraftMalformedTimestampLeftZero(t *testing.T) {
	payload := `{"startUtc": "tomorrow-ish"}`

	var raw RawDraft
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	d := raw.Canonical()
	assert.True(t, d.StartAt.IsZero())
}
