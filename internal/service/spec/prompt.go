package spec

import (
	"fmt"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// stageDirections is the per-stage flavor of the generation prompt. The
// wording mirrors the four reflection questions of the workflow.
var stageDirections = map[domain.StageKey]string{
	domain.StageSelect:  "a clear, inspiring visualization of choosing and committing to this dream",
	domain.StageProject: "the dreamer actively living inside this dream, seen in first person",
	domain.StageExpect:  "the feeling of certainty that this dream is already on its way",
	domain.StageCollect: "the moment of receiving and celebrating this dream fulfilled",
}

// BuildPrompt produces the deterministic generation prompt for a dream,
// stage and active profile. The same inputs always yield the same prompt,
// so the fallback's manual copy matches what the automatic path used.
// A nil profile or one without a description adds nothing.
func BuildPrompt(d *domain.Dream, stage domain.StageKey, p *domain.Profile) string {
	direction := stageDirections[stage]

	prompt := fmt.Sprintf(
		"Create a dreamlike, vivid, photorealistic image for the dream %q: %s.",
		d.DisplayName(), direction,
	)

	if rec := d.Spec.Stage(stage); rec != nil && rec.Notes != "" {
		prompt += fmt.Sprintf(" Incorporate these personal notes: %s", rec.Notes)
	}

	if p != nil && p.Description != "" {
		prompt += fmt.Sprintf(" The dreamer is %s.", p.Description)
	}

	return prompt
}
