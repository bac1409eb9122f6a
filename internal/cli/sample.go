package cli

import (
	"encoding/json"

	"humorpedia-web/internal/domain"
)

// sampleContent seeds the static loader so the service can run and be
// demoed without a content API or snapshot database behind it.
func sampleContent() []domain.Entity {
	return []domain.Entity{
		{
			ID:          "demo-person-1",
			ContentType: domain.TypePerson,
			Title:       "Иван Ургант",
			Slug:        "ivan-urgant",
			Status:      "published",
			Tags:        []string{"телеведущий", "юморист"},
			Modules: []domain.Module{
				{
					Type:  domain.ModuleTextBlock,
					Order: 1,
					Data: json.RawMessage(`{
						"title": "Биография",
						"content": "Российский телеведущий, шоумен и музыкант. Ведущий программы «Вечерний Ургант»."
					}`),
				},
				{
					Type:  domain.ModuleTimeline,
					Order: 2,
					Data: json.RawMessage(`{
						"title": "Карьера",
						"events": [
							{"year": 2012, "title": "Запуск «Вечернего Урганта»"},
							{"year": 2008, "title": "«Прожекторперисхилтон»"}
						]
					}`),
				},
			},
		},
		{
			ID:          "demo-quiz-1",
			ContentType: domain.TypeQuiz,
			Title:       "Насколько хорошо вы знаете российский юмор?",
			Slug:        "russian-humor-quiz",
			Status:      "published",
			Modules: []domain.Module{
				{
					Type:  domain.ModuleQuizQuestions,
					Order: 1,
					Data: json.RawMessage(`{
						"questions": [
							{
								"question": "Кто ведёт «Вечерний Ургант»?",
								"options": [
									{"text": "Иван Ургант", "correct": true},
									{"text": "Максим Галкин"},
									{"text": "Гарик Мартиросян"}
								]
							},
							{
								"question": "Какие из этих передач выходили на Первом канале?",
								"type": "multiple",
								"options": [
									{"text": "КВН", "correct": true},
									{"text": "Прожекторперисхилтон", "correct": true},
									{"text": "Камеди Клаб"}
								]
							},
							{
								"question": "В каком городе родился Иван Ургант?",
								"type": "text",
								"correct_answer": "Санкт-Петербург"
							}
						]
					}`),
				},
				{
					Type:  domain.ModuleQuizResults,
					Order: 2,
					Data: json.RawMessage(`{
						"results": [
							{"min_score": 0, "max_score": 40, "title": "Новичок", "description": "Самое время пересмотреть классику."},
							{"min_score": 41, "max_score": 80, "title": "Знаток", "description": "Вы явно смотрите телевизор не зря."},
							{"min_score": 81, "max_score": 100, "title": "Эксперт", "description": "Вам пора вести собственное шоу."}
						]
					}`),
				},
			},
		},
	}
}

func sampleSections() []domain.SectionNode {
	return []domain.SectionNode{
		{
			ID: "demo-section-shows", Title: "Телевизионные шоу", MenuTitle: "Шоу",
			Slug: "shows", FullPath: "shows", Order: 1, InMainMenu: true,
			Children: []domain.SectionNode{
				{ID: "demo-section-late-night", Title: "Вечерние шоу", Slug: "late-night", FullPath: "shows/late-night", Order: 1},
			},
		},
		{
			ID: "demo-section-people", Title: "Персоны", Slug: "people",
			FullPath: "people", Order: 2, InMainMenu: true,
		},
	}
}
