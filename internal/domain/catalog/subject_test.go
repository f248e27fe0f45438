package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-hub/enlistment/internal/domain/shared"
)

func mustSubject(t *testing.T, id string, units int, laboratory bool, prereqs ...*Subject) *Subject {
	t.Helper()
	subject, err := NewSubject(id, units, laboratory, prereqs...)
	require.NoError(t, err)
	return subject
}

func TestNewSubject_Validation(t *testing.T) {
	t.Run("valid subject", func(t *testing.T) {
		subject := mustSubject(t, "CCPROG1", 3, true)
		assert.Equal(t, shared.SubjectID("CCPROG1"), subject.ID())
		assert.Equal(t, shared.Units(3), subject.Units())
		assert.True(t, subject.IsLaboratory())
		assert.Empty(t, subject.Prerequisites())
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := NewSubject("  ", 3, false)
		assert.ErrorIs(t, err, shared.ErrEmptyValue)
	})

	t.Run("non-alphanumeric id", func(t *testing.T) {
		_, err := NewSubject("CC-PROG", 3, false)
		assert.ErrorIs(t, err, shared.ErrInvalidFormat)
	})

	t.Run("negative units", func(t *testing.T) {
		_, err := NewSubject("CCPROG1", -1, false)
		assert.ErrorIs(t, err, shared.ErrNegativeValue)
	})

	t.Run("zero units allowed", func(t *testing.T) {
		subject := mustSubject(t, "LCLSONE", 0, false)
		assert.Equal(t, shared.Units(0), subject.Units())
	})

	t.Run("nil prerequisite rejected", func(t *testing.T) {
		_, err := NewSubject("CCPROG2", 3, false, nil)
		assert.ErrorIs(t, err, shared.ErrNilReference)
	})
}

func TestSubject_CheckPrerequisites(t *testing.T) {
	prog1 := mustSubject(t, "CCPROG1", 3, true)
	prog2 := mustSubject(t, "CCPROG2", 3, true, prog1)
	prog3 := mustSubject(t, "CCPROG3", 3, true, prog1, prog2)

	t.Run("no prerequisites always passes", func(t *testing.T) {
		assert.NoError(t, prog1.CheckPrerequisites(nil))
	})

	t.Run("all prerequisites taken", func(t *testing.T) {
		assert.NoError(t, prog3.CheckPrerequisites([]*Subject{prog1, prog2}))
	})

	t.Run("missing prerequisites reported", func(t *testing.T) {
		err := prog3.CheckPrerequisites([]*Subject{prog1})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrPrerequisitesNotMet)
		assert.ErrorIs(t, err, shared.ErrRuleViolation)

		var unmet *UnmetPrerequisitesError
		require.True(t, errors.As(err, &unmet))
		assert.Equal(t, shared.SubjectID("CCPROG3"), unmet.SubjectID)
		assert.Equal(t, []shared.SubjectID{"CCPROG2"}, unmet.Unmet)
	})

	t.Run("empty history misses all prerequisites", func(t *testing.T) {
		err := prog3.CheckPrerequisites(nil)
		var unmet *UnmetPrerequisitesError
		require.True(t, errors.As(err, &unmet))
		assert.Equal(t, []shared.SubjectID{"CCPROG1", "CCPROG2"}, unmet.Unmet)
	})
}

func TestSubject_Equal(t *testing.T) {
	a := mustSubject(t, "MTH101A", 3, false)
	b := mustSubject(t, "MTH101A", 5, true)
	c := mustSubject(t, "CCICOMP", 3, false)

	// Identity is by id only.
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
