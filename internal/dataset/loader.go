package dataset

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"medirag/internal/models"
)

// Sentinel used by the source dataset for absent optional values.
const missingCell = "N/A"

var requiredColumns = []string{
	"ID",
	"Hospital",
	"Doctor_Name",
	"Department",
	"Main",
	"Specialty",
	"Paper_Count",
	"Education_Parsed",
	"Experience_Parsed",
	"specialty",
	"treatment_style",
	"uniqueness",
	"patient_evaluation",
	"consultation_style",
	"keywords",
}

var optionalColumns = []string{
	"total_posts",
	"total_comments",
	"positive_ratio",
	"negative_ratio",
	"neutral_ratio",
	"avg_sentiment_score",
	"communication_score",
	"most_frequent_patterns",
}

type LoadStats struct {
	Processed int
	Skipped   int
	Total     int
}

// schema maps column names to positions, resolved and validated once per load
// so row parsing never does stringly lookups against an unchecked header.
type schema map[string]int

func newSchema(header []string) (schema, error) {
	s := make(schema, len(header))
	for i, name := range header {
		s[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := s[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset is missing required columns: %s", strings.Join(missing, ", "))
	}
	return s, nil
}

func (s schema) cell(row []string, col string) string {
	i, ok := s[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Load parses a CSV or XLSX dataset into DoctorProfile records. A missing
// required column fails the whole load; a malformed row is logged and skipped
// so one bad record never aborts the batch.
func Load(path string) ([]models.DoctorProfile, LoadStats, error) {
	header, rows, err := ReadRaw(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	s, err := newSchema(header)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%s: %w", path, err)
	}

	records := make([]models.DoctorProfile, 0, len(rows))
	stats := LoadStats{Total: len(rows)}
	for i, row := range rows {
		p, err := s.parseRow(row)
		if err != nil {
			stats.Skipped++
			log.Printf("dataset: skipping row %d: %v", i+2, err)
			continue
		}
		records = append(records, p)
	}
	stats.Processed = len(records)
	log.Printf("dataset: processed %d of %d rows from %s", stats.Processed, stats.Total, path)
	return records, stats, nil
}

func (s schema) parseRow(row []string) (models.DoctorProfile, error) {
	var p models.DoctorProfile

	id, err := strconv.Atoi(s.cell(row, "ID"))
	if err != nil {
		return p, fmt.Errorf("column ID: %w", err)
	}
	paperCount, err := strconv.Atoi(s.cell(row, "Paper_Count"))
	if err != nil {
		return p, fmt.Errorf("column Paper_Count: %w", err)
	}

	p = models.DoctorProfile{
		ID:                id,
		Hospital:          s.cell(row, "Hospital"),
		DoctorName:        s.cell(row, "Doctor_Name"),
		Department:        s.cell(row, "Department"),
		MainFocus:         s.cell(row, "Main"),
		Specialty:         s.cell(row, "Specialty"),
		PaperCount:        paperCount,
		Education:         s.cell(row, "Education_Parsed"),
		Experience:        s.cell(row, "Experience_Parsed"),
		SpecialtyDetail:   s.cell(row, "specialty"),
		TreatmentStyle:    s.cell(row, "treatment_style"),
		Uniqueness:        s.cell(row, "uniqueness"),
		PatientEvaluation: s.cell(row, "patient_evaluation"),
		ConsultationStyle: s.cell(row, "consultation_style"),
		Keywords:          s.cell(row, "keywords"),
	}

	dst := map[string]**float64{
		"total_posts":            &p.TotalPosts,
		"total_comments":         &p.TotalComments,
		"positive_ratio":         &p.PositiveRatio,
		"negative_ratio":         &p.NegativeRatio,
		"neutral_ratio":          &p.NeutralRatio,
		"avg_sentiment_score":    &p.AvgSentimentScore,
		"communication_score":    &p.CommunicationScore,
		"most_frequent_patterns": &p.MostFrequentPatterns,
	}
	for _, col := range optionalColumns {
		raw := s.cell(row, col)
		if raw == "" || raw == missingCell {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.DoctorProfile{}, fmt.Errorf("column %s: %w", col, err)
		}
		*dst[col] = &v
	}
	return p, nil
}

// Validate reports whether the fields a caller can meaningfully retrieve on
// are present. It is an optional post-load filter, never applied by Load.
func Validate(p models.DoctorProfile) bool {
	return strings.TrimSpace(p.DoctorName) != "" &&
		strings.TrimSpace(p.Hospital) != "" &&
		strings.TrimSpace(p.Department) != "" &&
		strings.TrimSpace(p.Specialty) != ""
}
