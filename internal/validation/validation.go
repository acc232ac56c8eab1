// Package validation checks user input before it reaches the manifest store
// and audits stored state for inconsistencies.
package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/models"
	"github.com/julianstephens/manifest/internal/utils"
)

// IssueType represents the kind of inconsistency found in stored state.
type IssueType string

const (
	IssueDuplicateID        IssueType = "duplicate_id"
	IssueOrphanRitual       IssueType = "orphan_ritual"
	IssueInvalidReminder    IssueType = "invalid_reminder"
	IssueInvalidAffirmation IssueType = "invalid_affirmation"
	IssueInvalidDate        IssueType = "invalid_date"
)

type Issue struct {
	Type        IssueType
	Description string
	IDs         []string
}

type ValidationResult struct {
	Issues []Issue
}

func (vr *ValidationResult) HasIssues() bool {
	return len(vr.Issues) > 0
}

// FormatReport returns a human-readable report of all issues.
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasIssues() {
		return "No issues detected."
	}
	var b strings.Builder
	b.WriteString("Issues detected:\n")
	for _, issue := range vr.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t IssueType, ids []string, format string, args ...any) {
	vr.Issues = append(vr.Issues, Issue{Type: t, Description: fmt.Sprintf(format, args...), IDs: ids})
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateState audits a persisted state.
func (v *Validator) ValidateState(st models.State) ValidationResult {
	result := ValidationResult{}

	seen := make(map[string]string)
	check := func(kind, id string) {
		if id == "" {
			result.add(IssueDuplicateID, nil, "%s has an empty id", kind)
			return
		}
		if prev, ok := seen[id]; ok {
			result.add(IssueDuplicateID, []string{id}, "id %s is used by both a %s and a %s", id, prev, kind)
			return
		}
		seen[id] = kind
	}

	goalIDs := make(map[string]bool, len(st.Goals))
	for _, g := range st.Goals {
		check("goal", g.ID)
		goalIDs[g.ID] = true
		if g.TargetDate != "" && !isValidDate(g.TargetDate) {
			result.add(IssueInvalidDate, []string{g.ID}, "goal %q has invalid target date %s", g.Title, g.TargetDate)
		}
	}

	for _, r := range st.Rituals {
		check("ritual", r.ID)
		if r.GoalID != constants.GeneralRitualBucket && !goalIDs[r.GoalID] {
			result.add(IssueOrphanRitual, []string{r.ID}, "ritual %q points at missing goal %s", r.Title, r.GoalID)
		}
	}
	for _, e := range st.Gratitude {
		check("gratitude entry", e.ID)
	}
	for _, l := range st.LifestyleHistory {
		check("lifestyle shift", l.ID)
	}

	if st.Profile.ScheduleSet {
		times := st.Profile.ReminderTimes
		if !utils.ValidateTimeFormat(times.Morning) || !utils.ValidateTimeFormat(times.Evening) {
			result.add(IssueInvalidReminder, nil, "reminder times %q/%q are not HH:MM", times.Morning, times.Evening)
		}
	}

	a := st.Affirmation
	if a.Text != "" {
		if !a.Type.Valid() {
			result.add(IssueInvalidAffirmation, nil, "affirmation has unknown type %q", a.Type)
		}
		if !isValidDate(a.DateGenerated) {
			result.add(IssueInvalidDate, nil, "affirmation has invalid date %q", a.DateGenerated)
		}
	}

	return result
}

// AutoFixOrphanRituals moves rituals whose goal no longer exists into the
// general bucket and returns how many were moved.
func AutoFixOrphanRituals(result ValidationResult, st *models.State) int {
	orphans := make(map[string]bool)
	for _, issue := range result.Issues {
		if issue.Type == IssueOrphanRitual {
			for _, id := range issue.IDs {
				orphans[id] = true
			}
		}
	}
	fixed := 0
	for i := range st.Rituals {
		if orphans[st.Rituals[i].ID] {
			st.Rituals[i].GoalID = constants.GeneralRitualBucket
			fixed++
		}
	}
	return fixed
}

func isValidDate(s string) bool {
	_, err := utils.ParseDate(s)
	return err == nil
}
