package watering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligibleAfter48Hours(t *testing.T) {
	eligible, reason := CheckEligibility(ptrF(50), false, false, false)
	assert.True(t, eligible)
	assert.Empty(t, reason)
}

func TestNotEligibleBefore48Hours(t *testing.T) {
	eligible, reason := CheckEligibility(ptrF(30), false, false, false)
	assert.False(t, eligible)
	assert.Contains(t, reason, "Last watered 30.0h ago")
	assert.Contains(t, reason, "wait 18.0h more")
}

func TestNotEligibleRecentRain(t *testing.T) {
	eligible, reason := CheckEligibility(ptrF(60), true, false, false)
	assert.False(t, eligible)
	assert.Contains(t, reason, "Recent rain")
}

func TestNotEligibleRainExpected(t *testing.T) {
	eligible, reason := CheckEligibility(ptrF(60), false, true, false)
	assert.False(t, eligible)
	assert.Contains(t, reason, "Rain expected")
}

func TestNotEligibleSkipWindow(t *testing.T) {
	eligible, reason := CheckEligibility(ptrF(60), false, false, true)
	assert.False(t, eligible)
	assert.Contains(t, reason, "post-rain skip window")
}

func TestFirstWateringAlwaysEligible(t *testing.T) {
	eligible, reason := CheckEligibility(nil, false, false, false)
	assert.True(t, eligible)
	assert.Empty(t, reason)
}

// The minimum-interval rule outranks the rain rules.
func TestGateRuleOrder(t *testing.T) {
	eligible, reason := CheckEligibility(ptrF(10), true, true, true)
	assert.False(t, eligible)
	assert.Contains(t, reason, "Last watered 10.0h ago")
}
