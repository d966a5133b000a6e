package macrostage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/lattice/internal/domain/macrostage"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		name       string
		requested  macrostage.StructureType
		stageCount int
		taskCount  int
		wantErr    error
	}{
		{"unset to stages", macrostage.StructureStages, 0, 0, nil},
		{"unset to tasks", macrostage.StructureTasks, 0, 0, nil},
		{"stages to tasks while stages exist", macrostage.StructureTasks, 2, 0, macrostage.ErrModeConflict},
		{"tasks to stages while tasks exist", macrostage.StructureStages, 0, 3, macrostage.ErrModeConflict},
		{"stages to tasks after stages removed", macrostage.StructureTasks, 0, 0, nil},
		{"back to unset while childless", macrostage.StructureUnset, 0, 0, nil},
		{"back to unset while stages exist", macrostage.StructureUnset, 1, 0, macrostage.ErrModeConflict},
		{"back to unset while tasks exist", macrostage.StructureUnset, 0, 1, macrostage.ErrModeConflict},
		{"unknown type", macrostage.StructureType("phases"), 0, 0, macrostage.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := macrostage.ValidateTransition(tc.requested, tc.stageCount, tc.taskCount)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCanAttachStage(t *testing.T) {
	require.NoError(t, macrostage.CanAttachStage(macrostage.StructureUnset))
	require.NoError(t, macrostage.CanAttachStage(macrostage.StructureStages))
	require.ErrorIs(t, macrostage.CanAttachStage(macrostage.StructureTasks), macrostage.ErrModeConflict)
}

func TestCanAttachTask(t *testing.T) {
	// Direct attachment.
	require.NoError(t, macrostage.CanAttachTask(macrostage.StructureUnset, false))
	require.NoError(t, macrostage.CanAttachTask(macrostage.StructureTasks, false))
	require.ErrorIs(t, macrostage.CanAttachTask(macrostage.StructureStages, false), macrostage.ErrModeConflict)

	// Attachment under a stage.
	require.NoError(t, macrostage.CanAttachTask(macrostage.StructureStages, true))
	require.ErrorIs(t, macrostage.CanAttachTask(macrostage.StructureUnset, true), macrostage.ErrModeConflict)
	require.ErrorIs(t, macrostage.CanAttachTask(macrostage.StructureTasks, true), macrostage.ErrModeConflict)
}
