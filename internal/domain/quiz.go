package domain

// QuestionKind selects how a quiz question is answered and scored.
type QuestionKind string

const (
	// QuestionSingle is a pick-one question, the CMS default.
	QuestionSingle QuestionKind = "single"
	// QuestionMultiple is a pick-all-that-apply question.
	QuestionMultiple QuestionKind = "multiple"
	// QuestionText is a free-form input compared against CorrectAnswer.
	QuestionText QuestionKind = "text"
)

// QuizOption is one selectable answer of a quiz question.
type QuizOption struct {
	ID      int    `json:"id,omitempty"`
	Text    string `json:"text"`
	Correct bool   `json:"correct,omitempty"`
}

// QuizQuestion is one question as stored in a quiz_questions module. Kind
// defaults to single when the document carries no type.
type QuizQuestion struct {
	ID            int          `json:"id,omitempty"`
	Kind          QuestionKind `json:"type,omitempty"`
	Prompt        string       `json:"question"`
	Image         string       `json:"image,omitempty"`
	Options       []QuizOption `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
}

// QuizQuestionsData is the payload of a quiz_questions module.
type QuizQuestionsData struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizResultRange is one score bucket of a quiz_results module. Bounds are
// inclusive and may be expressed against either the raw correct count or the
// percentage.
type QuizResultRange struct {
	MinScore    int    `json:"min_score"`
	MaxScore    int    `json:"max_score"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Contains reports whether v falls inside the inclusive range.
func (r QuizResultRange) Contains(v int) bool {
	return v >= r.MinScore && v <= r.MaxScore
}

// QuizResultsData is the payload of a quiz_results module.
type QuizResultsData struct {
	Results []QuizResultRange `json:"results"`
}
