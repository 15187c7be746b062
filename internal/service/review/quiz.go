package review

import (
	"math/rand"

	"github.com/phrazzld/vortex-api/internal/domain"
)

// maxDistractors is how many wrong options accompany the correct term.
const maxDistractors = 3

// QuizQuestion is a single multiple-choice recall check: the learner sees
// the definition and picks the matching term from the options. The
// correct term is not serialized; correctness is judged server side.
type QuizQuestion struct {
	WordID     string   `json:"word_id"`
	Definition string   `json:"definition"`
	Options    []string `json:"options"`

	correctTerm string
}

// IsCorrect reports whether the selected term matches the correct option
// exactly. No normalization is applied; options are presented verbatim.
func (q *QuizQuestion) IsCorrect(selectedTerm string) bool {
	return selectedTerm == q.correctTerm
}

// buildQuestions constructs one question per target word. Distractor
// terms are drawn uniformly from the rest of the corpus, excluding the
// target. When fewer than three distractors exist the question degrades
// to however many are available rather than failing.
func buildQuestions(targets []*domain.Word, corpus []*domain.Word, rng *rand.Rand) []QuizQuestion {
	questions := make([]QuizQuestion, 0, len(targets))
	for _, target := range targets {
		pool := make([]string, 0, len(corpus))
		for _, word := range corpus {
			if word.ID == target.ID {
				continue
			}
			pool = append(pool, word.Term)
		}
		shuffleStrings(pool, rng)

		count := maxDistractors
		if count > len(pool) {
			count = len(pool)
		}
		options := append([]string{target.Term}, pool[:count]...)
		shuffleStrings(options, rng)

		questions = append(questions, QuizQuestion{
			WordID:      target.ID.String(),
			Definition:  target.Definition,
			Options:     options,
			correctTerm: target.Term,
		})
	}
	return questions
}

func shuffleStrings(items []string, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
