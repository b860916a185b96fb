package vra_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vra-io/catalog-client/pkg/vra"
)

func TestLiteralMap_Get(t *testing.T) {
	t.Parallel()

	m := &vra.LiteralMap{
		Entries: []vra.LiteralEntry{
			{Key: "MachineName", Value: vra.StringLiteral("hol-dev-11")},
			{Key: "MachineCPU", Value: vra.IntLiteral(1)},
		},
	}

	name, ok := m.Get("MachineName").StringValue()
	require.True(t, ok)
	assert.Equal(t, "hol-dev-11", name)

	assert.Nil(t, m.Get("missing"))

	var nilMap *vra.LiteralMap
	assert.Nil(t, nilMap.Get("anything"))
}

func TestLiteralMap_GetString(t *testing.T) {
	t.Parallel()

	m := &vra.LiteralMap{
		Entries: []vra.LiteralEntry{
			{Key: "MachineStatus", Value: vra.StringLiteral("On")},
			{Key: "MachineCPU", Value: vra.IntLiteral(1)},
		},
	}

	status, ok := m.GetString("MachineStatus")
	require.True(t, ok)
	assert.Equal(t, "On", status)

	_, ok = m.GetString("MachineCPU")
	assert.False(t, ok)

	_, ok = m.GetString("missing")
	assert.False(t, ok)
}

func TestLiteralMap_Set(t *testing.T) {
	t.Parallel()

	m := &vra.LiteralMap{}

	m.Set("description", vra.StringLiteral("first"))
	m.Set("reasons", vra.StringLiteral("testing"))
	require.Len(t, m.Entries, 2)

	m.Set("description", vra.StringLiteral("second"))
	require.Len(t, m.Entries, 2)

	value, ok := m.GetString("description")
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestLiteral_ScalarValues(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		s, ok := vra.StringLiteral("VM Network").StringValue()
		require.True(t, ok)
		assert.Equal(t, "VM Network", s)

		var nilLiteral *vra.Literal
		_, ok = nilLiteral.StringValue()
		assert.False(t, ok)
	})

	t.Run("bool", func(t *testing.T) {
		t.Parallel()

		b, ok := vra.BoolLiteral(true).BoolValue()
		require.True(t, ok)
		assert.True(t, b)

		_, ok = vra.StringLiteral("yes").BoolValue()
		assert.False(t, ok)
	})

	t.Run("int", func(t *testing.T) {
		t.Parallel()

		n, ok := vra.IntLiteral(4096).IntValue()
		require.True(t, ok)
		assert.Equal(t, 4096, n)
	})

	t.Run("quoted int", func(t *testing.T) {
		t.Parallel()

		quoted := &vra.Literal{Type: "string", Value: json.RawMessage(`"4096"`)}

		n, ok := quoted.IntValue()
		require.True(t, ok)
		assert.Equal(t, 4096, n)

		_, ok = vra.StringLiteral("not a number").IntValue()
		assert.False(t, ok)
	})
}

func TestLiteral_Unmarshal(t *testing.T) {
	t.Parallel()

	payload := `{
		"type": "complex",
		"componentTypeId": "com.vmware.csp.component.iaas.proxy.provider",
		"classId": "dynamicops.api.model.NetworkViewModel",
		"items": [
			{
				"values": {
					"entries": [
						{"key": "NETWORK_NAME", "value": {"type": "string", "value": "VM Network"}},
						{"key": "NETWORK_ADDRESS", "value": {"type": "string", "value": "192.168.110.200"}}
					]
				}
			}
		]
	}`

	var literal vra.Literal
	require.NoError(t, json.Unmarshal([]byte(payload), &literal))
	require.Len(t, literal.Items, 1)

	name, ok := literal.Items[0].Values.GetString("NETWORK_NAME")
	require.True(t, ok)
	assert.Equal(t, "VM Network", name)

	address, ok := literal.Items[0].Values.GetString("NETWORK_ADDRESS")
	require.True(t, ok)
	assert.Equal(t, "192.168.110.200", address)
}
