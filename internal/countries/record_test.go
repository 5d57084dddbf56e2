package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordsFullRecord(t *testing.T) {
	body := []byte(`[{"name":{"common":"Japan","official":"Japan"},"population":125836021,"region":"Asia","currencies":{"JPY":{"name":"Japanese yen","symbol":"¥"}}}]`)
	recs, err := ParseRecords(body)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	r := recs[0]
	require.NotNil(t, r.Name)
	assert.Equal(t, "Japan", *r.Name)
	require.NotNil(t, r.Population)
	assert.Equal(t, int64(125836021), *r.Population)
	require.NotNil(t, r.Region)
	assert.Equal(t, "Asia", *r.Region)
	assert.Equal(t, []string{"JPY"}, r.Currencies)
}

func TestParseRecordsDefensiveFields(t *testing.T) {
	body := []byte(`[
		{"name":{"common":""},"population":"not-a-number","region":"","currencies":["USD"]},
		{"name":"Plain","population":null,"currencies":null},
		42,
		"text",
		null,
		{}
	]`)
	recs, err := ParseRecords(body)
	require.NoError(t, err)
	require.Len(t, recs, 6)
	for i, r := range recs {
		assert.Nil(t, r.Name, "record %d", i)
		assert.Nil(t, r.Population, "record %d", i)
		assert.Nil(t, r.Region, "record %d", i)
		assert.Nil(t, r.Currencies, "record %d", i)
	}
}

func TestParseRecordsFractionalPopulationTruncates(t *testing.T) {
	recs, err := ParseRecords([]byte(`[{"population":1234.9}]`))
	require.NoError(t, err)
	require.NotNil(t, recs[0].Population)
	assert.Equal(t, int64(1234), *recs[0].Population)
}

func TestParseRecordsCurrencyKeys(t *testing.T) {
	recs, err := ParseRecords([]byte(`[{"currencies":{"USD":{},"EUR":{},"USD":{}}},{"currencies":{}}]`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"USD", "EUR"}, recs[0].Currencies)
	assert.NotNil(t, recs[1].Currencies)
	assert.Empty(t, recs[1].Currencies)
}

func TestParseRecordsTopLevel(t *testing.T) {
	recs, err := ParseRecords([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = ParseRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = ParseRecords([]byte(`{"status":404,"message":"Not Found"}`))
	assert.ErrorIs(t, err, ErrNotArray)
	assert.Contains(t, err.Error(), "object")

	_, err = ParseRecords([]byte(`[{"name":`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}
