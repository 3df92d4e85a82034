package quiz

import (
	"errors"
	"fmt"
)

// QuestionType distinguishes single-choice from multi-choice questions.
type QuestionType string

const (
	QuestionSingle   QuestionType = "single"
	QuestionMultiple QuestionType = "multiple"
)

// Answer is one selectable option. Weights contribute to the tally of each
// archetype when the answer is selected.
type Answer struct {
	ID      string
	Text    string
	Weights map[Archetype]int
}

// Question is one quiz screen.
type Question struct {
	ID            string
	Type          QuestionType
	Prompt        string
	Answers       []Answer
	MaxSelections int // multiple-choice only; 0 means 2
}

func (q Question) maxSelections() int {
	if q.Type == QuestionSingle {
		return 1
	}
	if q.MaxSelections <= 0 {
		return 2
	}
	return q.MaxSelections
}

func (q Question) answerByID(id string) (Answer, bool) {
	for _, a := range q.Answers {
		if a.ID == id {
			return a, true
		}
	}
	return Answer{}, false
}

// Quiz walks a visitor through an ordered question list and tallies answer
// weights into an archetype.
type Quiz struct {
	questions []Question
	answers   map[string][]string // question ID -> selected answer IDs
	index     int
	complete  bool
}

// New builds a quiz over the given questions.
func New(questions []Question) *Quiz {
	return &Quiz{
		questions: questions,
		answers:   make(map[string][]string),
	}
}

// CurrentQuestion returns the active question, or nil when the quiz is done.
func (qz *Quiz) CurrentQuestion() *Question {
	if qz.index >= len(qz.questions) {
		return nil
	}
	return &qz.questions[qz.index]
}

// IsComplete reports whether all questions have been answered.
func (qz *Quiz) IsComplete() bool {
	return qz.complete
}

// SelectAnswer toggles an answer on the current question. Single-choice
// questions replace the selection; multi-choice questions toggle, capped at
// the question's max. Selections beyond the cap are ignored.
func (qz *Quiz) SelectAnswer(answerID string) error {
	q := qz.CurrentQuestion()
	if q == nil {
		return errors.New("quiz is already complete")
	}
	if _, ok := q.answerByID(answerID); !ok {
		return fmt.Errorf("unknown answer %q for question %q", answerID, q.ID)
	}

	current := qz.answers[q.ID]
	max := q.maxSelections()

	if q.Type == QuestionSingle || max == 1 {
		qz.answers[q.ID] = []string{answerID}
		return nil
	}

	for i, id := range current {
		if id == answerID {
			qz.answers[q.ID] = append(current[:i:i], current[i+1:]...)
			return nil
		}
	}
	if len(current) >= max {
		return nil
	}
	qz.answers[q.ID] = append(current, answerID)
	return nil
}

// CanProceed reports whether the current question has a valid selection.
func (qz *Quiz) CanProceed() bool {
	q := qz.CurrentQuestion()
	if q == nil {
		return false
	}
	selected := len(qz.answers[q.ID])
	if q.Type == QuestionSingle {
		return selected == 1
	}
	return selected >= 1 && selected <= q.maxSelections()
}

// Next advances past the current question. Advancing past the last question
// marks the quiz complete.
func (qz *Quiz) Next() error {
	if !qz.CanProceed() {
		return errors.New("current question has no valid selection")
	}
	qz.index++
	if qz.index >= len(qz.questions) {
		qz.complete = true
	}
	return nil
}

// Previous steps back one question, reopening a completed quiz.
func (qz *Quiz) Previous() {
	if qz.index == 0 {
		return
	}
	qz.index--
	qz.complete = false
}

// Reset discards all answers and restarts from the first question.
func (qz *Quiz) Reset() {
	qz.answers = make(map[string][]string)
	qz.index = 0
	qz.complete = false
}

// Result tallies the selected answers' weights and returns the winning
// archetype. Ties resolve to the earlier entry in ArchetypeOrder so the
// outcome is stable.
func (qz *Quiz) Result() (Archetype, error) {
	if !qz.complete {
		return "", errors.New("quiz is not complete")
	}

	tally := make(map[Archetype]int)
	for _, q := range qz.questions {
		for _, answerID := range qz.answers[q.ID] {
			answer, ok := q.answerByID(answerID)
			if !ok {
				continue
			}
			for archetype, weight := range answer.Weights {
				tally[archetype] += weight
			}
		}
	}

	best := ArchetypeOrder[0]
	bestScore := tally[best]
	for _, candidate := range ArchetypeOrder[1:] {
		if tally[candidate] > bestScore {
			best = candidate
			bestScore = tally[candidate]
		}
	}
	return best, nil
}
