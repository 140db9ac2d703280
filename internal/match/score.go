// Package match computes the 0-100 candidate/job fit score. The local
// calculator is a fixed-weight linear combination; when the backend has
// produced its own score and AI mode is on, that score wins outright.
package match

import (
	"math"

	"go-hireloop-client/internal/models"
)

// Category weights. They sum to 1.0; a category with no applicable data
// contributes 0, so realized scores rarely reach 100.
const (
	weightSkills     = 0.35
	weightExperience = 0.20
	weightLocation   = 0.15
	weightSalary     = 0.10
	weightIndustry   = 0.10
	weightWorkType   = 0.10
)

// Context carries the candidate's profile skills plus whatever the active
// search form supplies. Zero values disable their category.
type Context struct {
	Skills          []string
	Location        string
	Industry        string
	WorkType        string
	ExperienceLevel string
	SalaryMin       int
	SalaryMax       int
}

// Score maps a job posting and a candidate context to an integer in [0,100].
// Pure function of its inputs.
func Score(job *models.JobPosting, ctx Context) int {
	total := skillsSubScore(job.RequiredSkills, ctx.Skills) * weightSkills

	if ctx.ExperienceLevel != "" && EqualsFold(job.Experience, ctx.ExperienceLevel) {
		total += weightExperience
	}
	if ctx.Location != "" && EqualsFold(job.Location, ctx.Location) {
		total += weightLocation
	}
	if ctx.Industry != "" && EqualsFold(job.Industry, ctx.Industry) {
		total += weightIndustry
	}
	if ctx.WorkType != "" && EqualsFold(job.WorkType, ctx.WorkType) {
		total += weightWorkType
	}
	if salaryOverlaps(job.Salary, ctx.SalaryMin, ctx.SalaryMax) {
		total += weightSalary
	}

	score := int(math.Round(total * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Effective returns the score to display and sort by: the backend score when
// AI mode is on and one is present, the local calculation otherwise.
func Effective(job *models.JobPosting, ctx Context, aiMode bool) int {
	if aiMode && job.AIScore != nil {
		return *job.AIScore
	}
	return Score(job, ctx)
}

// skillsSubScore is the ratio of candidate skills that fuzzily match any
// required skill, over the number of required skills, capped at 1 so the
// category cannot exceed its weight. An empty required list scores 0, never
// NaN and never a free pass.
func skillsSubScore(required, candidate []string) float64 {
	if len(required) == 0 || len(candidate) == 0 {
		return 0
	}
	matched := 0
	for _, skill := range candidate {
		if AnyFuzzy(skill, required) {
			matched++
		}
	}
	ratio := float64(matched) / float64(len(required))
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

func salaryOverlaps(s *models.Salary, min, max int) bool {
	if s == nil || (min == 0 && max == 0) {
		return false
	}
	if max == 0 {
		return s.Max >= min
	}
	return s.Min <= max && s.Max >= min
}
