// Package discovery turns a raw job list plus the active search form into
// the ordered list to render: normalize, text-filter, partition by skill
// match, apply field filters, then sort each group by match score with the
// matching group first.
package discovery

import (
	"sort"
	"strings"

	"go-hireloop-client/internal/match"
	"go-hireloop-client/internal/models"
)

const (
	fallbackTitle   = "Untitled Position"
	fallbackCompany = "Unknown Company"
)

// Filters is the search-panel state. Empty/zero values are no-ops.
type Filters struct {
	Location        string
	Industry        string
	WorkType        string
	Skills          []string
	JobType         string
	ExperienceLevel string
	SalaryMin       int
	SalaryMax       int
}

// Result is the ordered render list plus the partition it was built from.
type Result struct {
	Jobs        []models.JobPosting // matching first, then non-matching
	Matching    []models.JobPosting
	NonMatching []models.JobPosting
}

// Run executes the full pipeline. It never panics on malformed input: bad
// records are dropped or relabeled during normalization. For a fixed input
// list and filter set the output is deterministic, so re-running is
// idempotent.
func Run(raw []models.JobPosting, search string, f Filters, profileSkills []string, aiMode bool) Result {
	jobs := Normalize(raw)
	jobs = textFilter(jobs, search)

	matching, nonMatching := partition(jobs, append(append([]string{}, profileSkills...), f.Skills...))

	matching = fieldFilters(matching, f)
	nonMatching = fieldFilters(nonMatching, f)

	matching = skillsFilter(matching, f.Skills)
	nonMatching = skillsFilter(nonMatching, f.Skills)

	ctx := scoreContext(f, profileSkills)
	sortByScore(matching, ctx, aiMode)
	sortByScore(nonMatching, ctx, aiMode)

	ordered := make([]models.JobPosting, 0, len(matching)+len(nonMatching))
	ordered = append(ordered, matching...)
	ordered = append(ordered, nonMatching...)

	return Result{Jobs: ordered, Matching: matching, NonMatching: nonMatching}
}

// Normalize drops records missing an id and fills absent display fields with
// explicit fallback labels rather than rendering blanks.
func Normalize(raw []models.JobPosting) []models.JobPosting {
	out := make([]models.JobPosting, 0, len(raw))
	for _, job := range raw {
		if job.ID == "" {
			continue
		}
		if job.Title == "" {
			job.Title = fallbackTitle
		}
		if job.Company == nil || job.Company.Name == "" {
			job.Company = &models.Company{Name: fallbackCompany}
		}
		out = append(out, job)
	}
	return out
}

func textFilter(jobs []models.JobPosting, search string) []models.JobPosting {
	term := strings.TrimSpace(search)
	if term == "" {
		return jobs
	}
	folded := match.Fold(term)
	out := jobs[:0:0]
	for _, job := range jobs {
		haystack := match.Fold(job.Title + " " + job.Company.Name + " " + job.Description)
		if strings.Contains(haystack, folded) {
			out = append(out, job)
		}
	}
	return out
}

// partition splits jobs into those with at least one required skill fuzzily
// matching the candidate's skill pool and the rest. Jobs with no
// requiredSkills data are treated as non-matching, not excluded.
func partition(jobs []models.JobPosting, pool []string) (matching, nonMatching []models.JobPosting) {
	for _, job := range jobs {
		if hasAnySkill(job.RequiredSkills, pool) {
			matching = append(matching, job)
		} else {
			nonMatching = append(nonMatching, job)
		}
	}
	return matching, nonMatching
}

func hasAnySkill(required, pool []string) bool {
	for _, r := range required {
		if match.AnyFuzzy(r, pool) {
			return true
		}
	}
	return false
}

// fieldFilters applies the scalar filters with AND semantics. An empty
// filter value is a no-op for its field.
func fieldFilters(jobs []models.JobPosting, f Filters) []models.JobPosting {
	out := jobs[:0:0]
	for _, job := range jobs {
		if f.Location != "" && !match.EqualsFold(job.Location, f.Location) {
			continue
		}
		if f.JobType != "" && !match.EqualsFold(job.Type, f.JobType) {
			continue
		}
		if f.ExperienceLevel != "" && !match.EqualsFold(job.Experience, f.ExperienceLevel) {
			continue
		}
		if f.Industry != "" && !match.EqualsFold(job.Industry, f.Industry) {
			continue
		}
		if f.WorkType != "" && !match.EqualsFold(job.WorkType, f.WorkType) {
			continue
		}
		if !salaryInRange(job.Salary, f.SalaryMin, f.SalaryMax) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// skillsFilter keeps jobs whose required skills satisfy every panel skill.
// AND, not OR, so it is stricter than the partition step on purpose.
func skillsFilter(jobs []models.JobPosting, skills []string) []models.JobPosting {
	if len(skills) == 0 {
		return jobs
	}
	out := jobs[:0:0]
	for _, job := range jobs {
		if hasAllSkills(job.RequiredSkills, skills) {
			out = append(out, job)
		}
	}
	return out
}

func hasAllSkills(required, wanted []string) bool {
	for _, w := range wanted {
		if !match.AnyFuzzy(w, required) {
			return false
		}
	}
	return true
}

func salaryInRange(s *models.Salary, min, max int) bool {
	if min == 0 && max == 0 {
		return true
	}
	if s == nil {
		return false
	}
	if max == 0 {
		return s.Max >= min
	}
	return s.Min <= max && s.Max >= min
}

func scoreContext(f Filters, profileSkills []string) match.Context {
	return match.Context{
		Skills:          profileSkills,
		Location:        f.Location,
		Industry:        f.Industry,
		WorkType:        f.WorkType,
		ExperienceLevel: f.ExperienceLevel,
		SalaryMin:       f.SalaryMin,
		SalaryMax:       f.SalaryMax,
	}
}

// sortByScore orders descending by effective match score. The sort is stable
// so equal-score jobs keep their fetch order across re-runs.
func sortByScore(jobs []models.JobPosting, ctx match.Context, aiMode bool) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return match.Effective(&jobs[i], ctx, aiMode) > match.Effective(&jobs[j], ctx, aiMode)
	})
}
