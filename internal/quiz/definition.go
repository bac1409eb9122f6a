// Package quiz runs interactive quizzes: it extracts the runnable definition
// from a quiz document's modules, walks a learner through the questions and
// scores the run against the configured result ranges.
package quiz

import (
	"encoding/json"

	"humorpedia-web/internal/domain"
	"humorpedia-web/internal/render"
	"humorpedia-web/internal/richtext"
)

// Definition is everything needed to run one quiz.
type Definition struct {
	ID        string
	Slug      string
	Title     string
	Questions []domain.QuizQuestion
	Results   []domain.QuizResultRange
}

// ParseDefinition extracts the quiz from a content document. Modules go
// through the same visibility/order pass as the page pipeline, so hidden
// question modules stay out of the run; multiple quiz_questions or
// quiz_results modules concatenate in order.
func ParseDefinition(e domain.Entity) Definition {
	def := Definition{ID: e.ID, Slug: e.Slug, Title: e.Title}
	for _, m := range render.NormalizeAndFilter(e.Modules) {
		switch m.Type {
		case domain.ModuleQuizQuestions:
			var d domain.QuizQuestionsData
			if err := json.Unmarshal(m.Data, &d); err != nil {
				continue
			}
			for _, q := range d.Questions {
				q.Kind = kind(q)
				q.Prompt = richtext.Normalize(q.Prompt)
				q.Explanation = richtext.Normalize(q.Explanation)
				def.Questions = append(def.Questions, q)
			}
		case domain.ModuleQuizResults:
			var d domain.QuizResultsData
			if err := json.Unmarshal(m.Data, &d); err != nil {
				continue
			}
			def.Results = append(def.Results, d.Results...)
		}
	}
	return def
}

// kind resolves the question kind, defaulting to single: legacy quiz
// documents predate the type field.
func kind(q domain.QuizQuestion) domain.QuestionKind {
	switch q.Kind {
	case domain.QuestionMultiple, domain.QuestionText:
		return q.Kind
	default:
		return domain.QuestionSingle
	}
}
