package singularity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_AcquireReleaseBorrow(t *testing.T) {
	s := &slot{}

	_, err := s.borrow()
	assert.ErrorIs(t, err, ErrNotCreated)

	_, err = s.release()
	assert.ErrorIs(t, err, ErrAlreadyDestroyed)

	value := "occupant"
	stored, id, err := s.acquire(true, func() (any, error) { return &value, nil })
	require.NoError(t, err)
	assert.Same(t, &value, stored)
	assert.NotEmpty(t, id)
	assert.True(t, s.created)
	assert.True(t, s.globalAccess)

	borrowed, err := s.borrow()
	require.NoError(t, err)
	assert.Same(t, &value, borrowed)

	releasedID, err := s.release()
	require.NoError(t, err)
	assert.Equal(t, id, releasedID)
	assert.False(t, s.created)
	assert.False(t, s.globalAccess)
	assert.Nil(t, s.instance)
	assert.Empty(t, s.instanceID)
}

func TestSlot_AcquireWhileOccupiedFails(t *testing.T) {
	s := &slot{}

	first := 1
	_, _, err := s.acquire(false, func() (any, error) { return &first, nil })
	require.NoError(t, err)

	second := 2
	constructed := false
	_, _, err = s.acquire(false, func() (any, error) {
		constructed = true
		return &second, nil
	})
	assert.ErrorIs(t, err, ErrAlreadyCreated)
	// The constructor must not even run when the slot is occupied.
	assert.False(t, constructed)

	borrowed, err := s.borrow()
	require.NoError(t, err)
	assert.Same(t, &first, borrowed)
}

func TestSlot_ConstructorFailureLeavesSlotUntouched(t *testing.T) {
	s := &slot{}
	boom := errors.New("boom")

	_, _, err := s.acquire(true, func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.created)
	assert.False(t, s.globalAccess)
	assert.Nil(t, s.instance)
	assert.Empty(t, s.instanceID)
}

func TestSlot_FreshInstanceIDPerCycle(t *testing.T) {
	s := &slot{}

	value := 0
	_, firstID, err := s.acquire(false, func() (any, error) { return &value, nil })
	require.NoError(t, err)
	_, err = s.release()
	require.NoError(t, err)

	_, secondID, err := s.acquire(false, func() (any, error) { return &value, nil })
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)
}
