package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain digits", "500", 500},
		{"rupee symbol", "₹500", 500},
		{"symbol with separators", "₹ 12,795", 12795},
		{"decimal", "₹1,495.50", 1495.50},
		{"garbage", "free!", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestPrice_DecodesNumberAndString(t *testing.T) {
	var snap ProductSnapshot

	require.NoError(t, json.Unmarshal([]byte(`{"name":"a","price":1000}`), &snap))
	assert.Equal(t, float64(1000), snap.Price.Amount())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"b","price":"₹500"}`), &snap))
	assert.Equal(t, float64(500), snap.Price.Amount())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"c","price":{"weird":true}}`), &snap))
	assert.Equal(t, float64(0), snap.Price.Amount())
}

func TestPrice_MarshalsAsNumber(t *testing.T) {
	raw, err := json.Marshal(ProductSnapshot{Name: "a", Price: 8995})

	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":8995`)
}
