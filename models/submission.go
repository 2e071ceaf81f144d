package models

// Submission — нормализованная заявка, собранная из одного POST формы.
// Живёт только в рамках запроса: её потребляют журнал, рендерер и рассылка,
// после чего она отбрасывается.
type Submission struct {
	Date          string        `json:"date"`
	City          string        `json:"city"`
	Club          string        `json:"club"`
	Contacts      string        `json:"contacts"`
	Coach         string        `json:"coach"`
	Judge         string        `json:"judge"`
	JudgeCategory string        `json:"judgeCategory"`
	Participants  []Participant `json:"participants"`
}

// Participant — одна строка состава. Idx назначается нормализатором по
// позиции в исходном массиве (1..N) и дальше не перенумеровывается.
type Participant struct {
	Idx            int    `json:"idx"`
	Name           string `json:"name"`
	BirthYear      string `json:"birthYear"`
	HasRank        string `json:"hasRank"`
	PerformingRank string `json:"performingRank"`
	MedicalVisa    string `json:"medicalVisa"`
}
