package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"ironai/workout-app/internal/domain"
	"strings"
)

// ErrBadReply is wrapped when the model reply cannot be used as a program.
var ErrBadReply = errors.New("unusable model reply")

// Draft is a generated program before it is saved. Its JSON form is the one
// the web client posts back to create the program.
type Draft struct {
	Name        string     `json:"nome"`
	Description string     `json:"descricao"`
	Days        []DraftDay `json:"dias"`
}

type DraftDay struct {
	Name      string          `json:"nome"`
	Focus     string          `json:"foco"`
	Exercises []DraftExercise `json:"exercicios"`
}

type DraftExercise struct {
	Name      string           `json:"nome"`
	Equipment string           `json:"equipamento,omitempty"`
	Series    domain.LooseInt  `json:"series"`
	Reps      domain.LooseText `json:"repeticoes"`
	Rest      domain.LooseText `json:"descanso"`
	Note      string           `json:"observacao,omitempty"`
}

// DecodeDraft parses a model reply. Markdown code fences around the JSON are
// tolerated. A reply without days, with an empty day or with an unnamed
// exercise is rejected.
func DecodeDraft(reply string) (*Draft, error) {
	body := stripFences(reply)
	if body == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrBadReply)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(body), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}

	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		draft.Name = "Programa personalizado"
	}
	if len(draft.Days) == 0 {
		return nil, fmt.Errorf("%w: no training days", ErrBadReply)
	}
	for i := range draft.Days {
		day := &draft.Days[i]
		day.Name = strings.TrimSpace(day.Name)
		if day.Name == "" {
			day.Name = fmt.Sprintf("Treino %c", 'A'+i%26)
		}
		if len(day.Exercises) == 0 {
			return nil, fmt.Errorf("%w: day %d has no exercises", ErrBadReply, i+1)
		}
		for j := range day.Exercises {
			ex := &day.Exercises[j]
			ex.Name = strings.TrimSpace(ex.Name)
			if ex.Name == "" {
				return nil, fmt.Errorf("%w: day %d exercise %d has no name", ErrBadReply, i+1, j+1)
			}
		}
	}
	return &draft, nil
}

// stripFences removes a surrounding ```json ... ``` block if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag line
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
