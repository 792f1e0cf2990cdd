package bank

// File is the question-bank document schema loaded from YAML or JSON.
type File struct {
	Version int         `json:"version" yaml:"version"`
	Topics  []TopicSpec `json:"topics" yaml:"topics"`
}

// TopicSpec groups bank questions under one subject.
type TopicSpec struct {
	ID        string         `json:"topic_id" yaml:"topic_id"`
	Name      string         `json:"name" yaml:"name"`
	Questions []QuestionSpec `json:"questions" yaml:"questions"`
}

// QuestionSpec is one bank question before normalization.
type QuestionSpec struct {
	Number      int          `json:"number" yaml:"number"`
	Text        string       `json:"text" yaml:"text"`
	Kind        string       `json:"kind" yaml:"kind"`
	Choices     []ChoiceSpec `json:"choices" yaml:"choices"`
	Answer      []string     `json:"answer" yaml:"answer"`
	Explanation string       `json:"explain" yaml:"explain"`
}

// ChoiceSpec is one selectable option of a bank question.
type ChoiceSpec struct {
	Letter string `json:"letter" yaml:"letter"`
	Text   string `json:"text" yaml:"text"`
}
