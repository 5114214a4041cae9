package seedmodels

// SeedQuestion defines the structure for a question item in the JSON seed file.
type SeedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
}

// SeedCategory defines the structure for a category in the JSON seed file.
type SeedCategory struct {
	Type      string         `json:"type"`
	Questions []SeedQuestion `json:"questions"`
}
