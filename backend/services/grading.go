package services

import (
	"errors"
	"fmt"
	"math"

	"examprep/backend/models"
)

var ErrAnswerCount = errors.New("answer count does not match question count")

type PrelimsResult struct {
	Score    float64
	Accuracy float64
	Attempts int
	Correct  int
}

// GradePrelims scores answers against the key. A nil answer is unattempted.
// Every question carries totalMarks/len(questions) marks.
func GradePrelims(questions []models.PrelimsQuestion, key []models.AnswerKeyEntry, totalMarks int, answers []*int) (PrelimsResult, error) {
	if len(questions) != len(key) {
		return PrelimsResult{}, fmt.Errorf("answer key has %d entries for %d questions", len(key), len(questions))
	}
	if len(answers) != len(questions) {
		return PrelimsResult{}, ErrAnswerCount
	}

	var result PrelimsResult
	for i, answer := range answers {
		if answer == nil {
			continue
		}
		result.Attempts++
		if *answer == key[i].CorrectAnswerIndex {
			result.Correct++
		}
	}

	if len(questions) > 0 {
		perQuestion := float64(totalMarks) / float64(len(questions))
		result.Score = round2(float64(result.Correct) * perQuestion)
	}
	if result.Attempts > 0 {
		result.Accuracy = round2(float64(result.Correct) / float64(result.Attempts) * 100)
	}
	return result, nil
}

// ValidateAnswerKey checks that the key lines up with the questions.
func ValidateAnswerKey(questions []models.PrelimsQuestion, key []models.AnswerKeyEntry) error {
	if len(questions) != len(key) {
		return fmt.Errorf("answerKeyData has %d entries but questionData has %d", len(key), len(questions))
	}
	for i, entry := range key {
		if entry.CorrectAnswerIndex < 0 || entry.CorrectAnswerIndex >= len(questions[i].Answers) {
			return fmt.Errorf("answerKeyData[%d].correctAnswerIndex is out of range", i)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
