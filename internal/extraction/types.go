package extraction

import "sort"

// Strategy names as reported on matches and in status output.
const (
	StrategyExact   = "exact_phrase"
	StrategyFuzzy   = "fuzzy"
	StrategyContext = "context_pattern"
	StrategyDirect  = "direct_keyword"
)

// SkillMatch is a single piece of evidence for a canonical skill.
type SkillMatch struct {
	SkillID     string  `json:"skill_id"`
	Confidence  float64 `json:"confidence"`
	MatchedText string  `json:"matched_text"`
	Strategy    string  `json:"strategy"`
	Version     string  `json:"version,omitempty"`
}

// ExtractedSkills holds the deduplicated canonical ids found in a text.
// An id is in at most one of Technical and Soft. Both are sorted.
type ExtractedSkills struct {
	Technical  []string           `json:"technical_skills"`
	Soft       []string           `json:"soft_skills"`
	Confidence map[string]float64 `json:"confidence,omitempty"`
}

// NewExtractedSkills builds a value from id lists, dropping duplicates and
// any soft id that is also listed as technical.
func NewExtractedSkills(technical, soft []string) ExtractedSkills {
	tech := dedupSorted(technical)
	techSet := make(map[string]struct{}, len(tech))
	for _, id := range tech {
		techSet[id] = struct{}{}
	}

	var softOnly []string
	for _, id := range soft {
		if _, ok := techSet[id]; !ok {
			softOnly = append(softOnly, id)
		}
	}

	return ExtractedSkills{Technical: tech, Soft: dedupSorted(softOnly)}
}

// All returns technical ids followed by soft ids.
func (e ExtractedSkills) All() []string {
	out := make([]string, 0, len(e.Technical)+len(e.Soft))
	out = append(out, e.Technical...)
	return append(out, e.Soft...)
}

// Count returns the number of distinct skills.
func (e ExtractedSkills) Count() int {
	return len(e.Technical) + len(e.Soft)
}

// HasTechnical reports whether id was found as a technical skill.
func (e ExtractedSkills) HasTechnical(id string) bool {
	return containsSorted(e.Technical, id)
}

// HasSoft reports whether id was found as a soft skill.
func (e ExtractedSkills) HasSoft(id string) bool {
	return containsSorted(e.Soft, id)
}

// Has reports whether id was found at all.
func (e ExtractedSkills) Has(id string) bool {
	return e.HasTechnical(id) || e.HasSoft(id)
}

func containsSorted(ids []string, id string) bool {
	i := sort.SearchStrings(ids, id)
	return i < len(ids) && ids[i] == id
}

func dedupSorted(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
