package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_Sorted(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.Equal(t, "0001_init.sql", names[0])
	assert.IsIncreasing(t, names)
}

func TestInitSchema_DeclaresSlotKeys(t *testing.T) {
	body, err := files.ReadFile("0001_init.sql")
	require.NoError(t, err)

	schema := string(body)
	assert.Contains(t, schema, "PRIMARY KEY (slot_date, slot_time)")
	assert.Contains(t, schema, "CHECK (id = 1)")
	assert.Contains(t, schema, "CHECK (status IN ('pending', 'confirmed', 'denied'))")
}
