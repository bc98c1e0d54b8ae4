package pixelpack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartErrorWrapsSentinel(t *testing.T) {
	err := &PartError{PartID: "p1", Err: ErrNoRotationFits}
	assert.True(t, errors.Is(err, ErrNoRotationFits))
	assert.Contains(t, err.Error(), "p1")
}
