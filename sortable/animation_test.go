package sortable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresetByNameFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "default", PresetByName("no-such-preset").Name)
	assert.Equal(t, "snappy", PresetByName("snappy").Name)
}

func TestPresetNamesAreSorted(t *testing.T) {
	assert.Equal(t, []string{"default", "gentle", "smooth", "snappy"}, PresetNames())
}

func TestPresetDurationsArePositive(t *testing.T) {
	for _, name := range PresetNames() {
		assert.Positive(t, PresetByName(name).Duration, name)
	}
}
