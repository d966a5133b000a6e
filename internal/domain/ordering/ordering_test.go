package ordering_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/lattice/internal/domain/ordering"
)

func TestApply_Permutation(t *testing.T) {
	current := []string{"a", "b", "c"}

	positions, err := ordering.Apply(current, []string{"c", "a", "b"})
	require.NoError(t, err)
	require.Equal(t, []ordering.Position{
		{ID: "c", Position: 1},
		{ID: "a", Position: 2},
		{ID: "b", Position: 3},
	}, positions)
}

func TestApply_Empty(t *testing.T) {
	positions, err := ordering.Apply(nil, nil)
	require.NoError(t, err)
	require.Empty(t, positions)
}

func TestApply_Rejections(t *testing.T) {
	current := []string{"a", "b", "c"}

	cases := []struct {
		name      string
		requested []string
	}{
		{"omission", []string{"a", "b"}},
		{"unknown id", []string{"a", "b", "x"}},
		{"duplicate", []string{"a", "b", "b"}},
		{"extra id", []string{"a", "b", "c", "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ordering.Apply(current, tc.requested)
			require.ErrorIs(t, err, ordering.ErrInvalidOrder)
		})
	}
}

func TestNext(t *testing.T) {
	require.Equal(t, 1, ordering.Next(nil))
	require.Equal(t, 4, ordering.Next([]int{1, 2, 3}))
	// Gaps left by deletions are not reused.
	require.Equal(t, 8, ordering.Next([]int{2, 7}))
}
