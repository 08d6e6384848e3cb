package models

import "fmt"

// DoctorProfile is one professor record parsed from the source dataset.
// JSON tags follow the historical column names so API payloads stay compatible.
// Optional stats are pointers: nil means the source cell was absent, which is
// not the same thing as a recorded value of zero.
type DoctorProfile struct {
	ID                int    `json:"ID"`
	Hospital          string `json:"Hospital"`
	DoctorName        string `json:"Doctor_Name"`
	Department        string `json:"Department"`
	MainFocus         string `json:"Main"`
	Specialty         string `json:"Specialty"`
	PaperCount        int    `json:"Paper_Count"`
	Education         string `json:"Education_Parsed"`
	Experience        string `json:"Experience_Parsed"`
	SpecialtyDetail   string `json:"specialty"`
	TreatmentStyle    string `json:"treatment_style"`
	Uniqueness        string `json:"uniqueness"`
	PatientEvaluation string `json:"patient_evaluation"`
	ConsultationStyle string `json:"consultation_style"`
	Keywords          string `json:"keywords"`

	TotalPosts           *float64 `json:"total_posts,omitempty"`
	TotalComments        *float64 `json:"total_comments,omitempty"`
	PositiveRatio        *float64 `json:"positive_ratio,omitempty"`
	NegativeRatio        *float64 `json:"negative_ratio,omitempty"`
	NeutralRatio         *float64 `json:"neutral_ratio,omitempty"`
	AvgSentimentScore    *float64 `json:"avg_sentiment_score,omitempty"`
	CommunicationScore   *float64 `json:"communication_score,omitempty"`
	MostFrequentPatterns *float64 `json:"most_frequent_patterns,omitempty"`
}

// VectorID is the stable index key for a profile. Re-ingesting the same
// profile id overwrites its index entry instead of appending a duplicate.
func (p DoctorProfile) VectorID() string {
	return fmt.Sprintf("doc_%d", p.ID)
}
