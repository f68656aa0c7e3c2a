package core

// ActiveEdit is the single editable (record, field) slot within one
// section. Sections hold at most one active edit; starting another replaces
// it outright, abandoning any unsaved value without warning.
type ActiveEdit struct {
	RecordID      int64
	Field         string
	PendingValue  string
	OriginalValue string
}

// EditSlot owns the optional active edit for a section.
type EditSlot struct {
	active *ActiveEdit
}

// Start begins editing a field, replacing any prior edit. The original
// value is kept so Cancel can restore the displayed value.
func (s *EditSlot) Start(recordID int64, field, original string) {
	s.active = &ActiveEdit{
		RecordID:      recordID,
		Field:         field,
		PendingValue:  original,
		OriginalValue: original,
	}
}

// Update stores the in-progress value. No-op when nothing is being edited.
func (s *EditSlot) Update(pending string) {
	if s.active != nil {
		s.active.PendingValue = pending
	}
}

// Active returns the current edit, if any.
func (s *EditSlot) Active() (ActiveEdit, bool) {
	if s.active == nil {
		return ActiveEdit{}, false
	}
	return *s.active, true
}

// IsEditing reports whether the given (record, field) pair is the active
// slot.
func (s *EditSlot) IsEditing(recordID int64, field string) bool {
	return s.active != nil && s.active.RecordID == recordID && s.active.Field == field
}

// Commit clears the slot and hands back the finished edit for the caller
// to validate and persist.
func (s *EditSlot) Commit() (ActiveEdit, bool) {
	if s.active == nil {
		return ActiveEdit{}, false
	}
	edit := *s.active
	s.active = nil
	return edit, true
}

// Cancel discards the edit and returns the original value to restore.
func (s *EditSlot) Cancel() (string, bool) {
	if s.active == nil {
		return "", false
	}
	original := s.active.OriginalValue
	s.active = nil
	return original, true
}
