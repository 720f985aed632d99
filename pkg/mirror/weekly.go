package mirror

import (
	"context"
	"fmt"
	"strings"
)

// WeeklyReflection is one day's worth of answers fed into the weekly summary.
type WeeklyReflection struct {
	Date    string // YYYY-MM-DD
	React   string
	Respond string
	Notice  string
	Learn   string
}

const weeklyPromptTemplate = `Below are daily Responsagility reflections from the same person across one week.

Reflect:
- common reactions
- common responses
- repeated noticings
- key learnings
- a short theme of the week

Constraints:
- No advice
- No fixing
- Warm, grounded, human tone

Reflections:
%s

Write a weekly mirror.`

// CompileWeek renders the week's reflections into the multi-day text block
// embedded in the weekly prompt.
func CompileWeek(reflections []WeeklyReflection) string {
	blocks := make([]string, len(reflections))
	for i, r := range reflections {
		blocks[i] = fmt.Sprintf("Date: %s\n\nReact:\n%s\n\nRespond:\n%s\n\nNotice:\n%s\n\nLearn:\n%s",
			r.Date, r.React, r.Respond, r.Notice, r.Learn)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// SynthesizeWeekly produces one weekly summary from the given daily
// reflections. Callers skip empty weeks; an empty slice still yields a
// well-formed prompt but is not worth a model call.
func (s *Synthesizer) SynthesizeWeekly(ctx context.Context, reflections []WeeklyReflection) (string, error) {
	prompt := fmt.Sprintf(weeklyPromptTemplate, CompileWeek(reflections))
	return s.provider.Generate(ctx, prompt)
}
