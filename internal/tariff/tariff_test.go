package tariff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_KnownTariffs(t *testing.T) {
	month := Resolve("1month")
	assert.Equal(t, 30, month.DurationDays)
	assert.Equal(t, 17800, month.Price)
	assert.Equal(t, 100.0, month.TrafficLimitGB)

	year := Resolve("12months")
	assert.Equal(t, 365, year.DurationDays)
	assert.Equal(t, 1200.0, year.TrafficLimitGB)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Resolve("3months"), Resolve("3Months"))
}

func TestResolve_UnknownFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), Resolve("lifetime"))
	assert.Equal(t, Default(), Resolve(""))
}

func TestAll_StableOrder(t *testing.T) {
	tariffs := All()
	assert.Len(t, tariffs, 4)
	assert.Equal(t, "1month", tariffs[0].ID)
	assert.Equal(t, "12months", tariffs[3].ID)
}
