package appsync

import (
	"go-hireloop-client/internal/models"
)

// AppliedIndex is a derived jobID → application lookup, recomputed from the
// fetched application list each time. A pure selector, not a second copy of
// mutable state.
type AppliedIndex map[string]*models.Application

func BuildAppliedIndex(apps []models.Application) AppliedIndex {
	idx := make(AppliedIndex, len(apps))
	for i := range apps {
		if apps[i].Job == nil || apps[i].Job.ID == "" {
			continue
		}
		idx[apps[i].Job.ID] = &apps[i]
	}
	return idx
}

// Applied reports whether the candidate already has an application for the job.
func (idx AppliedIndex) Applied(jobID string) bool {
	_, ok := idx[jobID]
	return ok
}

// Shortlisted reports shortlist membership for the job, false when not applied.
func (idx AppliedIndex) Shortlisted(jobID string) bool {
	app, ok := idx[jobID]
	return ok && (app.Shortlisted || app.Status == models.StatusShortlisted)
}
