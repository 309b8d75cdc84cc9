package assessment

import "strconv"

// ScopeKey partitions every submission and progress row. A nil CohortID is
// the direct (non-cohort) enrollment path; two cohorts, or a cohort and the
// direct path, never share rows for the same student and item.
type ScopeKey struct {
	StudentID uint
	ItemID    uint
	CohortID  *uint
}

// CohortKey flattens the nullable cohort id into a non-null column value
// ("" = direct) so unique indexes cover the direct path too; NULLs are
// distinct in both postgres and sqlite unique indexes.
func (k ScopeKey) CohortKey() string {
	if k.CohortID == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*k.CohortID), 10)
}
