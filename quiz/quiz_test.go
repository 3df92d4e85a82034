package quiz

import "testing"

func testQuestions() []Question {
	return []Question{
		{
			ID:     "q1",
			Type:   QuestionSingle,
			Prompt: "Pick your morning mood",
			Answers: []Answer{
				{ID: "a", Weights: map[Archetype]int{ArchetypeMorning: 2}},
				{ID: "b", Weights: map[Archetype]int{ArchetypeNight: 2}},
			},
		},
		{
			ID:     "q2",
			Type:   QuestionMultiple,
			Prompt: "Pick up to two cravings",
			Answers: []Answer{
				{ID: "c", Weights: map[Archetype]int{ArchetypeMorning: 1}},
				{ID: "d", Weights: map[Archetype]int{ArchetypeNight: 1}},
				{ID: "e", Weights: map[Archetype]int{ArchetypeGolden: 3}},
			},
		},
	}
}

func mustSelect(t *testing.T, qz *Quiz, answerID string) {
	t.Helper()
	if err := qz.SelectAnswer(answerID); err != nil {
		t.Fatalf("SelectAnswer(%s) failed: %v", answerID, err)
	}
}

func mustNext(t *testing.T, qz *Quiz) {
	t.Helper()
	if err := qz.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
}

func TestSingleChoiceReplacesSelection(t *testing.T) {
	qz := New(testQuestions())
	mustSelect(t, qz, "a")
	mustSelect(t, qz, "b")
	mustNext(t, qz)
	mustSelect(t, qz, "d")
	mustNext(t, qz)

	result, err := qz.Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	// the second single-choice pick replaced the first, so night wins 3-0
	if result != ArchetypeNight {
		t.Errorf("result = %s, want %s", result, ArchetypeNight)
	}
}

func TestMultipleChoiceTogglesAndCaps(t *testing.T) {
	qz := New(testQuestions())
	mustSelect(t, qz, "a")
	mustNext(t, qz)

	mustSelect(t, qz, "c")
	mustSelect(t, qz, "d")
	// third selection exceeds the cap of two and is ignored
	mustSelect(t, qz, "e")
	// toggling off then re-picking frees a slot
	mustSelect(t, qz, "d")
	mustSelect(t, qz, "e")
	mustNext(t, qz)

	result, err := qz.Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	// morning 2+1, golden 3: tie resolves to the earlier archetype
	if result != ArchetypeMorning {
		t.Errorf("result = %s, want %s", result, ArchetypeMorning)
	}
}

func TestNextRequiresSelection(t *testing.T) {
	qz := New(testQuestions())
	if err := qz.Next(); err == nil {
		t.Fatal("Next should fail with no selection")
	}
	if qz.CanProceed() {
		t.Error("CanProceed should be false with no selection")
	}
}

func TestResultRequiresCompletion(t *testing.T) {
	qz := New(testQuestions())
	mustSelect(t, qz, "a")
	if _, err := qz.Result(); err == nil {
		t.Fatal("Result should fail before the quiz completes")
	}
}

func TestSelectAnswerRejectsUnknownAnswer(t *testing.T) {
	qz := New(testQuestions())
	if err := qz.SelectAnswer("zzz"); err == nil {
		t.Fatal("expected error for unknown answer")
	}
}

func TestPreviousReopensQuiz(t *testing.T) {
	qz := New(testQuestions())
	mustSelect(t, qz, "b")
	mustNext(t, qz)
	mustSelect(t, qz, "e")
	mustNext(t, qz)

	if !qz.IsComplete() {
		t.Fatal("quiz should be complete")
	}
	qz.Previous()
	if qz.IsComplete() {
		t.Error("Previous should reopen a completed quiz")
	}
	if qz.CurrentQuestion() == nil || qz.CurrentQuestion().ID != "q2" {
		t.Error("Previous should return to the last question")
	}
}

func TestResetClearsAnswers(t *testing.T) {
	qz := New(testQuestions())
	mustSelect(t, qz, "a")
	mustNext(t, qz)
	qz.Reset()

	if qz.CurrentQuestion() == nil || qz.CurrentQuestion().ID != "q1" {
		t.Error("Reset should return to the first question")
	}
	if qz.CanProceed() {
		t.Error("Reset should discard all selections")
	}
}

func TestTieBreaksToEarlierArchetype(t *testing.T) {
	qz := New([]Question{
		{
			ID:   "q",
			Type: QuestionSingle,
			Answers: []Answer{
				{ID: "tie", Weights: map[Archetype]int{ArchetypeChill: 2, ArchetypeMidday: 2}},
			},
		},
	})
	mustSelect(t, qz, "tie")
	mustNext(t, qz)

	result, err := qz.Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if result != ArchetypeMidday {
		t.Errorf("result = %s, want %s (midday precedes chill)", result, ArchetypeMidday)
	}
}

func TestFrameNumberFollowsArchetypeOrder(t *testing.T) {
	seen := make(map[int]Archetype)
	for _, a := range ArchetypeOrder {
		n := FrameNumber(a)
		if n == 0 {
			t.Fatalf("FrameNumber(%s) = 0", a)
		}
		if prev, dup := seen[n]; dup {
			t.Errorf("frame %d assigned to both %s and %s", n, prev, a)
		}
		seen[n] = a
	}
	if FrameNumber("unknown") != 0 {
		t.Error("unknown archetype should map to frame 0")
	}
}
