package translio

// FieldDiff is the difference between two extractions of the same object's
// fields, e.g. a page-builder blob before and after an edit.
type FieldDiff struct {
	// Added holds fields whose value is new in the current extraction.
	Added []SourceField

	// Removed holds fields whose value no longer appears.
	Removed []SourceField

	// Unchanged holds fields whose value exists in both extractions.
	Unchanged []SourceField

	// Modified holds fields where the same field name carries a changed value.
	Modified []ModifiedField
}

// ModifiedField is a field whose value changed between extractions.
type ModifiedField struct {
	Old SourceField
	New SourceField
}

// HasChanges reports whether anything needs retranslation or cleanup.
func (d *FieldDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// NeedsTranslation returns the fields that should enter the next batch:
// new fields and the new side of modified fields.
func (d *FieldDiff) NeedsTranslation() []SourceField {
	out := make([]SourceField, 0, len(d.Added)+len(d.Modified))
	out = append(out, d.Added...)
	for _, m := range d.Modified {
		out = append(out, m.New)
	}
	return out
}

// DiffFields compares two extractions by value fingerprint, then pairs up
// added/removed entries that share a field name into Modified. Useful for
// incremental retranslation: only the returned NeedsTranslation set has to be
// re-sent to the provider.
func DiffFields(oldFields, newFields []SourceField) *FieldDiff {
	result := &FieldDiff{}

	oldByHash := make(map[string]SourceField)
	newByHash := make(map[string]SourceField)
	for _, f := range oldFields {
		oldByHash[Fingerprint(f.Value)] = f
	}
	for _, f := range newFields {
		newByHash[Fingerprint(f.Value)] = f
	}

	for _, f := range oldFields {
		if _, ok := newByHash[Fingerprint(f.Value)]; ok {
			result.Unchanged = append(result.Unchanged, f)
		} else {
			result.Removed = append(result.Removed, f)
		}
	}
	for _, f := range newFields {
		if _, ok := oldByHash[Fingerprint(f.Value)]; !ok {
			result.Added = append(result.Added, f)
		}
	}

	// Pair removed/added fields with the same identity into modifications.
	if len(result.Added) > 0 && len(result.Removed) > 0 {
		addedMatched := make(map[int]bool)
		removedMatched := make(map[int]bool)

		for ri, removed := range result.Removed {
			for ai, added := range result.Added {
				if addedMatched[ai] {
					continue
				}
				sameField := removed.ObjectID == added.ObjectID &&
					removed.ObjectType == added.ObjectType &&
					removed.FieldName == added.FieldName
				if sameField {
					result.Modified = append(result.Modified, ModifiedField{Old: removed, New: added})
					addedMatched[ai] = true
					removedMatched[ri] = true
					break
				}
			}
		}

		var added []SourceField
		for i, f := range result.Added {
			if !addedMatched[i] {
				added = append(added, f)
			}
		}
		result.Added = added

		var removed []SourceField
		for i, f := range result.Removed {
			if !removedMatched[i] {
				removed = append(removed, f)
			}
		}
		result.Removed = removed
	}

	return result
}
