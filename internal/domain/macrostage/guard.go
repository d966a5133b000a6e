package macrostage

// ValidateTransition checks whether a macro stage holding stageCount stages
// and directTaskCount direct tasks may switch to the requested structure
// type. A transition that would orphan existing children is a mode conflict.
func ValidateTransition(requested StructureType, stageCount, directTaskCount int) error {
	if !requested.Valid() {
		return ErrInvalidInput
	}
	if requested != StructureStages && stageCount > 0 {
		return ErrModeConflict
	}
	if requested != StructureTasks && directTaskCount > 0 {
		return ErrModeConflict
	}
	return nil
}

// CanAttachStage checks whether a stage may be created under a macro stage
// in the given mode. Creating the first stage while unset is allowed; an
// existing direct-task mode is never overridden.
func CanAttachStage(current StructureType) error {
	if current == StructureTasks {
		return ErrModeConflict
	}
	return nil
}

// CanAttachTask checks whether a task may be created under a macro stage in
// the given mode. underStage says whether the task targets a stage; a staged
// macro stage rejects direct tasks and an unstaged one rejects stage tasks.
func CanAttachTask(current StructureType, underStage bool) error {
	if underStage {
		if current != StructureStages {
			return ErrModeConflict
		}
		return nil
	}
	if current == StructureStages {
		return ErrModeConflict
	}
	return nil
}
