package habitat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulationRules_CoverEveryField(t *testing.T) {
	for _, f := range Fields() {
		assert.NotNil(t, accumulationRules[f], "field %s has no accumulation rule", f)
		assert.NotEmpty(t, fieldNames[f], "field %d has no name", int(f))
	}
	assert.Len(t, Fields(), int(fieldCount))
}

func TestField_StringOutOfRange(t *testing.T) {
	assert.Equal(t, "unknown", Field(-1).String())
	assert.Equal(t, "unknown", fieldCount.String())
	assert.Equal(t, "crew", FieldCrew.String())
}
