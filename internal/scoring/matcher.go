// Package scoring holds the two matching rubrics: a weighted keyword/section
// scan of resume text against a job's requirement text, and a lighter
// structured-field rubric used for bulk candidate recommendation. Both are
// pure functions with no I/O, randomness or clock.
package scoring

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MinCandidateTextLen is the shortest candidate text worth scoring. Anything
// shorter short-circuits with ErrInsufficientText instead of a misleading 0.
const MinCandidateTextLen = 30

// MissingSkillsCap bounds the missing-skills list in the breakdown.
const MissingSkillsCap = 10

// ErrInsufficientText signals that the candidate text is too short to score.
var ErrInsufficientText = errors.New("candidate text too short to score")

// Experience classification of the candidate text.
const (
	LevelFresher     = "Fresher"
	LevelExperienced = "Experienced"
)

// Verdict labels by overall score.
const (
	VerdictExcellent = "Excellent Match"
	VerdictStrong    = "Strong Match"
	VerdictModerate  = "Moderate Match"
	VerdictWeak      = "Needs Improvement"
)

var yearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)`)

// SectionFlags records which resume sections were detected.
type SectionFlags struct {
	HasExperience    bool `json:"has_experience"`
	HasProjects      bool `json:"has_projects"`
	HasInternship    bool `json:"has_internship"`
	HasEducation     bool `json:"has_education"`
	HasCertification bool `json:"has_certification"`
}

// ResumeScore is the immutable breakdown produced by one scan. Created fresh
// on every call; never merged across calls.
type ResumeScore struct {
	Overall         int          `json:"overall"`
	MatchedSkills   []string     `json:"matched_skills"`
	MissingSkills   []string     `json:"missing_skills"`
	ExperienceLevel string       `json:"experience_level"`
	YearsOfExp      int          `json:"years_of_experience"`
	Sections        SectionFlags `json:"sections"`
	Verdict         string       `json:"verdict"`
}

// ScanResume scores how well candidateText satisfies jobText using the fixed
// weighted rubric: skills 40, experience 20, projects 15, education 10,
// tools 5, certifications 5, role keywords 5.
func ScanResume(jobText, candidateText string) (*ResumeScore, error) {
	candidateText = strings.TrimSpace(candidateText)
	if len(candidateText) < MinCandidateTextLen {
		return nil, ErrInsufficientText
	}

	job := strings.ToLower(jobText)
	cand := strings.ToLower(candidateText)

	sections := SectionFlags{
		HasExperience:    containsAny(cand, experienceKeywords),
		HasProjects:      containsAny(cand, projectKeywords),
		HasInternship:    containsAny(cand, internshipKeywords),
		HasEducation:     containsAny(cand, educationKeywords),
		HasCertification: containsAny(cand, certificationKeywords),
	}

	// 1. Skills (40): vocabulary terms the job asks for vs. those the
	// candidate shows. Default 20 when the job names no known skill so an
	// empty requirement list is not rewarded with a full score.
	required := termsIn(job)
	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, term := range required {
		if containsTerm(cand, term) {
			matched = append(matched, term)
		} else if len(missing) < MissingSkillsCap {
			missing = append(missing, term)
		}
	}
	skillsScore := 20.0
	if len(required) > 0 {
		skillsScore = float64(len(matched)) / float64(len(required)) * 40
	}

	// 2. Experience / internship / projects (20). The fresher path splits the
	// weight between internship and projects evidence.
	years := yearsOfExperience(cand)
	level := LevelFresher
	if years > 0 || (sections.HasExperience && !containsTerm(cand, "fresher")) {
		level = LevelExperienced
	}
	var expScore float64
	if level == LevelExperienced {
		if sections.HasExperience {
			expScore = 20
			if years > 2 {
				expScore += 5
			}
			expScore = math.Min(expScore, 20)
		}
	} else {
		if sections.HasInternship {
			expScore += 10
		}
		if sections.HasProjects {
			expScore += 10
		}
	}

	// 3. Projects (15). Scored again on top of the fresher redistribution
	// above; the double count is part of the published scoring contract.
	var projectScore float64
	if sections.HasProjects {
		projectScore = 15
	}

	// 4. Education (10).
	var eduScore float64
	if sections.HasEducation {
		eduScore = 10
	}

	// 5. Tools (5): matched-skill count as a proxy, capped.
	toolsScore := math.Min(5, float64(len(matched)))

	// 6. Certifications / achievements (5).
	var certScore float64
	if sections.HasCertification {
		certScore = 5
	}

	// 7. Role-keyword overlap (5): up to 10 distinct long words from the job
	// text, scored by the fraction also present in the candidate text.
	roleScore := roleKeywordScore(job, cand)

	total := skillsScore + expScore + projectScore + eduScore + toolsScore + certScore + roleScore
	overall := int(math.Round(total))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	return &ResumeScore{
		Overall:         overall,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		ExperienceLevel: level,
		YearsOfExp:      years,
		Sections:        sections,
		Verdict:         VerdictFor(overall),
	}, nil
}

// VerdictFor maps an overall score onto its verdict label.
func VerdictFor(score int) string {
	switch {
	case score >= 90:
		return VerdictExcellent
	case score >= 75:
		return VerdictStrong
	case score >= 60:
		return VerdictModerate
	default:
		return VerdictWeak
	}
}

// termsIn returns the vocabulary entries present in text, in vocabulary order.
func termsIn(text string) []string {
	var found []string
	for _, term := range skillVocabulary {
		if containsTerm(text, term) {
			found = append(found, term)
		}
	}
	return found
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if containsTerm(text, term) {
			return true
		}
	}
	return false
}

// containsTerm reports whether term occurs in text as a whole word or phrase.
// Both inputs must already be lower-cased. Substring search with a boundary
// check on each side, so "go" never matches inside "golang" or "django" but
// "machine learning" matches as a phrase.
func containsTerm(text, term string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)
		if boundaryBefore(text, idx) && boundaryAfter(text, end) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := rune(text[idx-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r := rune(text[end])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// yearsOfExperience extracts the first explicit "N years" figure, 0 if none.
func yearsOfExperience(text string) int {
	m := yearsPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	years := 0
	for _, c := range m[1] {
		years = years*10 + int(c-'0')
		if years > 60 { // implausible, treat as noise
			return 0
		}
	}
	return years
}

// roleKeywordScore takes up to 10 distinct words longer than 5 characters from
// the job text and scales the fraction found in the candidate text to 5.
// Flat 2.5 when the job text has no such words.
func roleKeywordScore(job, cand string) float64 {
	seen := make(map[string]bool)
	var words []string
	for _, w := range strings.Fields(job) {
		w = strings.Trim(w, ".,;:()[]{}!?\"'")
		if len(w) <= 5 || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
		if len(words) == 10 {
			break
		}
	}
	if len(words) == 0 {
		return 2.5
	}
	hit := 0
	for _, w := range words {
		if containsTerm(cand, w) {
			hit++
		}
	}
	return float64(hit) / float64(len(words)) * 5
}
