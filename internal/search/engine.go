package search

import (
	"context"
	"fmt"
	"log"

	"medirag/internal/dataset"
	"medirag/internal/models"
	"medirag/internal/providers"
	"medirag/internal/vector"
)

// Engine embeds queries and profiles with a remote model and stores or
// retrieves them through a similarity index.
type Engine struct {
	embedder providers.Embedder
	index    vector.Index
}

func NewEngine(embedder providers.Embedder, index vector.Index) *Engine {
	return &Engine{embedder: embedder, index: index}
}

// Search embeds the query and returns the metadata of the topK nearest
// profiles, nearest first. No matches is an empty slice, not an error; that
// is the user-visible "no information found" case.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]map[string]any, error) {
	vec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return e.index.Query(ctx, vec, topK)
}

type IndexOptions struct {
	// CachePath holds the fingerprint cache; empty disables caching.
	CachePath string
	RunID     string
}

type IndexStats struct {
	Indexed      int
	SkippedCache int
	Failed       int
}

// IndexProfiles embeds and upserts each record sequentially. A failing record
// is logged and skipped so one bad profile never aborts the batch. Records
// whose composed text is unchanged since the last run are skipped via the
// fingerprint cache.
func (e *Engine) IndexProfiles(ctx context.Context, records []models.DoctorProfile, opts IndexOptions) (IndexStats, error) {
	var stats IndexStats

	cache := fingerprints{}
	if opts.CachePath != "" {
		loaded, err := loadFingerprints(opts.CachePath)
		if err != nil {
			return stats, err
		}
		cache = loaded
	}

	for _, record := range records {
		text := dataset.SearchableText(record)
		id := record.VectorID()
		fp := fingerprint(text)

		if opts.CachePath != "" && cache[id] == fp {
			stats.SkippedCache++
			continue
		}

		vec, err := e.embedder.Embed(ctx, text)
		if err != nil {
			stats.Failed++
			log.Printf("search: run %s: embedding record %d failed: %v", opts.RunID, record.ID, err)
			continue
		}
		if err := e.index.Upsert(ctx, id, vec, profileMetadata(record, text)); err != nil {
			stats.Failed++
			log.Printf("search: run %s: upserting record %d failed: %v", opts.RunID, record.ID, err)
			continue
		}
		cache[id] = fp
		stats.Indexed++
		log.Printf("search: run %s: indexed profile for Dr. %s", opts.RunID, record.DoctorName)
	}

	if opts.CachePath != "" {
		if err := cache.save(opts.CachePath); err != nil {
			// Best effort: a lost cache only costs recomputation next run.
			log.Printf("search: run %s: saving fingerprint cache failed: %v", opts.RunID, err)
		}
	}
	return stats, nil
}

// profileMetadata mirrors the display fields stored next to each vector; the
// composed text rides along so answers can quote the profile verbatim.
func profileMetadata(p models.DoctorProfile, text string) map[string]any {
	return map[string]any{
		"id":                 p.ID,
		"doctor_name":        p.DoctorName,
		"hospital":           p.Hospital,
		"department":         p.Department,
		"specialty":          p.Specialty,
		"main_focus":         p.MainFocus,
		"treatment_style":    p.TreatmentStyle,
		"uniqueness":         p.Uniqueness,
		"patient_evaluation": p.PatientEvaluation,
		"consultation_style": p.ConsultationStyle,
		"keywords":           p.Keywords,
		"profile_text":       text,
	}
}
