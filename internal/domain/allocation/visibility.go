package allocation

// QACandidate is one modeler-assigned asset that a QA user might review,
// together with everything needed to decide whether they may see it.
type QACandidate struct {
	AssetID   uint
	ListID    uint
	ModelerID uint
	// PairedQAID is the modeler's default QA, if any.
	PairedQAID       *uint
	ProvisionalQAIDs []uint
	// ExplicitQAIDs holds users with a non-provisional QA row on the asset.
	ExplicitQAIDs []uint
}

// VisibleTo applies the override rule: an asset with a provisional QA is
// visible only to that QA. Otherwise the paired QA and any explicitly
// assigned QA see it.
func (c QACandidate) VisibleTo(qaUserID uint) bool {
	if len(c.ProvisionalQAIDs) > 0 {
		return containsUint(c.ProvisionalQAIDs, qaUserID)
	}
	if c.PairedQAID != nil && *c.PairedQAID == qaUserID {
		return true
	}
	return containsUint(c.ExplicitQAIDs, qaUserID)
}

// ProvisionalFor reports whether qaUserID sees the asset because of an override.
func (c QACandidate) ProvisionalFor(qaUserID uint) bool {
	return containsUint(c.ProvisionalQAIDs, qaUserID)
}

func containsUint(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
