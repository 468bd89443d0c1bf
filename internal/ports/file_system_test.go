package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAccessMode_ConstantsAreTyped(t *testing.T) {
	for _, mode := range []interface{}{ReadWrite, ReadWriteExecute, ReadAllWriteOwner} {
		assert.IsType(t, AccessMode(0), mode)
	}
}

func TestAccessMode_MatchesMockArguments(t *testing.T) {
	expected := mock.Arguments{"out.yaml", ReadAllWriteOwner}

	_, mismatches := expected.Diff([]interface{}{"out.yaml", AccessMode(2)})

	assert.Zero(t, mismatches)
}
