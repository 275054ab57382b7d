package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// maxSkills caps the skill list stored per posting.
const maxSkills = 15

const skillsPromptTemplate = `You are tagging a job posting for a student job board.

Extract the concrete skills a student would need for this job. Return ONLY a
JSON array of short skill names, most important first. No commentary.

Job title: %s

Job description:
%s`

// ExtractSkills asks Gemini for the skills implied by a posting's title and
// description.
func (c *Client) ExtractSkills(ctx context.Context, title, description string) ([]string, error) {
	prompt := fmt.Sprintf(skillsPromptTemplate, title, description)

	text, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("skill extraction failed: %w", err)
	}

	skills, err := parseSkills(text)
	if err != nil {
		return nil, fmt.Errorf("skill extraction returned unusable JSON: %w", err)
	}
	return skills, nil
}

// parseSkills decodes the model's skill list. Both a bare array and a
// {"skills": [...]} wrapper are accepted; entries are trimmed and deduplicated
// case-insensitively.
func parseSkills(text string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		var wrapped struct {
			Skills []string `json:"skills"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, err
		}
		items = wrapped.Skills
	}

	seen := make(map[string]bool)
	skills := make([]string, 0, len(items))
	for _, item := range items {
		skill := strings.TrimSpace(item)
		if skill == "" || seen[strings.ToLower(skill)] {
			continue
		}
		seen[strings.ToLower(skill)] = true
		skills = append(skills, skill)
		if len(skills) == maxSkills {
			break
		}
	}
	return skills, nil
}
