package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resu/internal/types"
)

// -----------------------------------------------------------------------------
// Resume Methods
// -----------------------------------------------------------------------------

const resumeColumns = `id, company, job_title, jd_text, parsed_jd, generation_config,
	relevance_selection, resume_data, cover_letter, template_id, ats_score,
	prompt_version, token_usage, status, created_at, updated_at`

// CreateResume inserts a new résumé record
func (db *DB) CreateResume(ctx context.Context, rec *types.ResumeRecord) (*types.ResumeRecord, error) {
	docs, err := marshalDocuments(rec)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (id, company, job_title, jd_text, parsed_jd, generation_config,
		                      relevance_selection, resume_data, cover_letter, template_id,
		                      ats_score, prompt_version, token_usage, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		id, rec.Company, rec.JobTitle, rec.JDText, docs.parsedJD, docs.config,
		docs.selection, docs.resume, docs.coverLetter, templateOrDefault(rec.TemplateID),
		docs.atsScore, rec.PromptVersion, docs.tokenUsage, string(types.StatusDraft),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	return db.GetResume(ctx, id.String())
}

// GetResume retrieves a résumé and its versions, newest first
func (db *DB) GetResume(ctx context.Context, id string) (*types.ResumeRecord, error) {
	resumeID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	rec, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, resumeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_data, change_description, created_at
		 FROM resume_versions WHERE resume_id = $1
		 ORDER BY created_at DESC, seq DESC`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume versions: %w", err)
	}
	defer rows.Close()

	rec.Versions = []types.ResumeVersion{}
	for rows.Next() {
		var v types.ResumeVersion
		var versionID uuid.UUID
		var data []byte
		if err := rows.Scan(&versionID, &data, &v.ChangeDescription, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume version: %w", err)
		}
		if err := json.Unmarshal(data, &v.ResumeData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume version: %w", err)
		}
		v.ID = versionID.String()
		rec.Versions = append(rec.Versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resume versions: %w", err)
	}

	return rec, nil
}

// ListResumes returns résumé summaries, newest first
func (db *DB) ListResumes(ctx context.Context) ([]types.ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company, job_title, COALESCE((ats_score->>'score')::int, 0),
		        status, template_id, created_at, updated_at
		 FROM resumes ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []types.ResumeSummary{}
	for rows.Next() {
		var s types.ResumeSummary
		var id uuid.UUID
		var status string
		if err := rows.Scan(&id, &s.Company, &s.JobTitle, &s.ATSScore, &status,
			&s.TemplateID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume summary: %w", err)
		}
		s.ID = id.String()
		s.Status = types.ResumeStatus(status)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resumes: %w", err)
	}
	return summaries, nil
}

// UpdateResume applies a partial update. The version snapshot and the new
// content are written in one transaction with the row locked.
func (db *DB) UpdateResume(ctx context.Context, id string, update *types.ResumeUpdate) (*types.ResumeRecord, error) {
	resumeID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var currentJSON []byte
	err = tx.QueryRow(ctx,
		`SELECT resume_data FROM resumes WHERE id = $1 FOR UPDATE`, resumeID,
	).Scan(&currentJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock resume: %w", err)
	}

	var current types.ResumeData
	if err := json.Unmarshal(currentJSON, &current); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume data: %w", err)
	}

	history := History[types.ResumeData]{
		Snapshot: func(ctx context.Context, previous types.ResumeData, description string) error {
			data, err := json.Marshal(previous)
			if err != nil {
				return fmt.Errorf("failed to marshal resume version: %w", err)
			}
			_, err = tx.Exec(ctx,
				`INSERT INTO resume_versions (id, resume_id, resume_data, change_description)
				 VALUES ($1, $2, $3, $4)`,
				uuid.New(), resumeID, data, description,
			)
			if err != nil {
				return fmt.Errorf("failed to save resume version: %w", err)
			}
			return nil
		},
	}

	next, replaced, err := history.Apply(ctx, current, update.ResumeData, update.ChangeDescription)
	if err != nil {
		return nil, err
	}

	var resumeJSON, coverJSON any
	if replaced {
		if resumeJSON, err = json.Marshal(next); err != nil {
			return nil, fmt.Errorf("failed to marshal resume data: %w", err)
		}
	}
	if update.CoverLetter != nil {
		if coverJSON, err = json.Marshal(update.CoverLetter); err != nil {
			return nil, fmt.Errorf("failed to marshal cover letter: %w", err)
		}
	}
	var status *string
	if update.Status != nil {
		s := string(*update.Status)
		status = &s
	}

	_, err = tx.Exec(ctx,
		`UPDATE resumes SET
		     resume_data  = COALESCE($2::jsonb, resume_data),
		     cover_letter = COALESCE($3::jsonb, cover_letter),
		     template_id  = COALESCE($4::text, template_id),
		     status       = COALESCE($5::text, status),
		     updated_at   = NOW()
		 WHERE id = $1`,
		resumeID, resumeJSON, coverJSON, update.TemplateID, status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit resume update: %w", err)
	}

	return db.GetResume(ctx, id)
}

// DeleteResume removes a résumé; its versions are removed by cascade
func (db *DB) DeleteResume(ctx context.Context, id string) error {
	resumeID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, resumeID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// resumeDocuments holds the JSONB columns of a résumé row
type resumeDocuments struct {
	parsedJD, config, selection, resume, atsScore, tokenUsage []byte
	coverLetter                                               any
}

func marshalDocuments(rec *types.ResumeRecord) (*resumeDocuments, error) {
	var docs resumeDocuments
	fields := []struct {
		name string
		dst  *[]byte
		v    any
	}{
		{"parsed job description", &docs.parsedJD, rec.ParsedJD},
		{"generation config", &docs.config, rec.GenerationConfig},
		{"relevance selection", &docs.selection, rec.RelevanceSelection},
		{"resume data", &docs.resume, rec.ResumeData},
		{"ats score", &docs.atsScore, rec.ATSScore},
		{"token usage", &docs.tokenUsage, rec.TokenUsage},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", f.name, err)
		}
		*f.dst = data
	}

	if rec.CoverLetter != nil {
		data, err := json.Marshal(rec.CoverLetter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal cover letter: %w", err)
		}
		docs.coverLetter = data
	}
	return &docs, nil
}

func scanResume(row pgx.Row) (*types.ResumeRecord, error) {
	var rec types.ResumeRecord
	var id uuid.UUID
	var status string
	var parsedJD, config, selection, resume, coverLetter, atsScore, tokenUsage []byte

	err := row.Scan(&id, &rec.Company, &rec.JobTitle, &rec.JDText, &parsedJD, &config,
		&selection, &resume, &coverLetter, &rec.TemplateID, &atsScore,
		&rec.PromptVersion, &tokenUsage, &status, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.ID = id.String()
	rec.Status = types.ResumeStatus(status)

	documents := []struct {
		name string
		data []byte
		dst  any
	}{
		{"parsed job description", parsedJD, &rec.ParsedJD},
		{"generation config", config, &rec.GenerationConfig},
		{"relevance selection", selection, &rec.RelevanceSelection},
		{"resume data", resume, &rec.ResumeData},
		{"ats score", atsScore, &rec.ATSScore},
		{"token usage", tokenUsage, &rec.TokenUsage},
	}
	for _, d := range documents {
		if d.data == nil {
			continue
		}
		if err := json.Unmarshal(d.data, d.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", d.name, err)
		}
	}

	if coverLetter != nil {
		rec.CoverLetter = &types.CoverLetterData{}
		if err := json.Unmarshal(coverLetter, rec.CoverLetter); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cover letter: %w", err)
		}
	}
	return &rec, nil
}

func templateOrDefault(id string) string {
	if id == "" {
		return types.DefaultTemplateID
	}
	return id
}
