package dto

import "strings"

// UpdateProfileRequest is a partial update: nil fields are left unchanged.
// Skills, when present, replaces the whole list.
type UpdateProfileRequest struct {
	FullName    *string  `json:"fullName,omitempty" validate:"omitempty,min=1,max=100"`
	Position    *string  `json:"position,omitempty" validate:"omitempty,max=100"`
	Company     *string  `json:"company,omitempty" validate:"omitempty,max=100"`
	Bio         *string  `json:"bio,omitempty" validate:"omitempty,max=2000"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	LinkedInURL *string  `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	WebsiteURL  *string  `json:"websiteUrl,omitempty" validate:"omitempty,url"`
	Skills      []string `json:"skills,omitempty" validate:"omitempty,max=30,dive,min=1,max=50"`
}

// SearchQuery filters profiles by free text and/or a single skill.
type SearchQuery struct {
	Query string
	Skill string
}

func (q SearchQuery) Empty() bool {
	return strings.TrimSpace(q.Query) == "" && strings.TrimSpace(q.Skill) == ""
}

// NormalizeSkills trims entries, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling.
func NormalizeSkills(skills []string) []string {
	if skills == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
