package robot

import (
	"testing"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"github.com/stretchr/testify/assert"
)

func TestIsSixAxisArm(t *testing.T) {
	servos := func(ids ...int) []feetech.FoundServo {
		out := make([]feetech.FoundServo, len(ids))
		for i, id := range ids {
			out[i] = feetech.FoundServo{ID: id}
		}
		return out
	}

	assert.True(t, IsSixAxisArm(servos(1, 2, 3, 4, 5, 6)))
	assert.True(t, IsSixAxisArm(servos(6, 5, 4, 3, 2, 1)))
	assert.False(t, IsSixAxisArm(servos(1, 2, 3, 4, 5)))
	assert.False(t, IsSixAxisArm(servos(1, 2, 3, 4, 5, 7)))
	assert.False(t, IsSixAxisArm(servos(1, 1, 2, 3, 4, 5)))
}
