package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `id, employer_id, job_title, location, remote_options, work_type,
	        pay_type, pay_amount, recommended_courses, verification_tier,
	        job_description, job_summary, responsibilities, must_have_qualifications,
	        nice_to_have_qualifications, application_deadline, max_applicants,
	        perks_and_benefits, ai_skills, status, created_at, updated_at`

// CreateJob inserts a job row and returns it.
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	courses, err := marshalList(input.RecommendedCourses)
	if err != nil {
		return nil, err
	}
	responsibilities, err := marshalList(input.Responsibilities)
	if err != nil {
		return nil, err
	}
	mustHave, err := marshalList(input.MustHaveQualifications)
	if err != nil {
		return nil, err
	}
	niceToHave, err := marshalList(input.NiceToHaveQualifications)
	if err != nil {
		return nil, err
	}
	perks, err := marshalList(input.PerksAndBenefits)
	if err != nil {
		return nil, err
	}
	skills, err := marshalList(input.AISkills)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (employer_id, job_title, location, remote_options, work_type,
		                   pay_type, pay_amount, recommended_courses, verification_tier,
		                   job_description, job_summary, responsibilities,
		                   must_have_qualifications, nice_to_have_qualifications,
		                   application_deadline, max_applicants, perks_and_benefits, ai_skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		         $15::timestamptz, $16, $17, $18)
		 RETURNING `+jobColumns,
		input.EmployerID, input.JobTitle, input.Location, input.RemoteOptions,
		input.WorkType, input.PayType, input.PayAmount, courses, input.VerificationTier,
		input.JobDescription, input.JobSummary, responsibilities, mustHave, niceToHave,
		input.Deadline, input.MaxApplicants, perks, skills,
	)

	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJobByID retrieves a job by its ID
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// UpdateJob writes the editable columns of a job. A nil AISkills leaves the
// stored ai_skills untouched.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input *JobUpdateInput) (*Job, error) {
	courses, err := marshalList(input.RecommendedCourses)
	if err != nil {
		return nil, err
	}
	responsibilities, err := marshalList(input.Responsibilities)
	if err != nil {
		return nil, err
	}
	mustHave, err := marshalList(input.MustHaveQualifications)
	if err != nil {
		return nil, err
	}
	niceToHave, err := marshalList(input.NiceToHaveQualifications)
	if err != nil {
		return nil, err
	}
	perks, err := marshalList(input.PerksAndBenefits)
	if err != nil {
		return nil, err
	}

	var skills []byte
	if input.AISkills != nil {
		skills, err = marshalList(input.AISkills)
		if err != nil {
			return nil, err
		}
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE jobs SET
		     job_title = $2,
		     location = $3,
		     remote_options = $4,
		     work_type = $5,
		     pay_type = $6,
		     pay_amount = $7,
		     recommended_courses = $8,
		     verification_tier = $9,
		     job_description = $10,
		     job_summary = $11,
		     responsibilities = $12,
		     must_have_qualifications = $13,
		     nice_to_have_qualifications = $14,
		     application_deadline = $15::timestamptz,
		     max_applicants = $16,
		     perks_and_benefits = $17,
		     ai_skills = COALESCE($18, ai_skills),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		id, input.JobTitle, input.Location, input.RemoteOptions, input.WorkType,
		input.PayType, input.PayAmount, courses, input.VerificationTier,
		input.JobDescription, input.JobSummary, responsibilities, mustHave, niceToHave,
		input.Deadline, input.MaxApplicants, perks, skills,
	)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// ListJobs returns a filtered, paginated page of jobs plus the total count.
func (db *DB) ListJobs(ctx context.Context, opts ListJobsOptions) ([]Job, int, error) {
	where := []string{}
	args := []any{}

	addFilter := func(column string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if opts.EmployerID != nil {
		addFilter("employer_id", *opts.EmployerID)
	}
	if opts.WorkType != nil {
		addFilter("work_type", *opts.WorkType)
	}
	if opts.Tier != nil {
		addFilter("verification_tier", *opts.Tier)
	}
	if opts.Status != nil {
		addFilter("status", *opts.Status)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`SELECT %s FROM jobs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, whereClause, len(args)-1, len(args))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, total, nil
}

// SetJobSkills overwrites the stored ai_skills for a job. Used by the
// asynchronous skill extraction path after a job has been published.
func (db *DB) SetJobSkills(ctx context.Context, id uuid.UUID, skills []string) error {
	data, err := marshalList(skills)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`UPDATE jobs SET ai_skills = $1, updated_at = NOW() WHERE id = $2`,
		data, id)
	if err != nil {
		return fmt.Errorf("failed to set job skills: %w", err)
	}
	return nil
}

// CloseJob marks a job closed without deleting its row.
func (db *DB) CloseJob(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`,
		JobStatusClosed, id)
	if err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}
	return nil
}

// scanJob scans one job row, unpacking the jsonb list columns.
func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	var coursesJSON, responsibilitiesJSON, mustHaveJSON, niceToHaveJSON, perksJSON, skillsJSON []byte

	err := row.Scan(&j.ID, &j.EmployerID, &j.JobTitle, &j.Location, &j.RemoteOptions,
		&j.WorkType, &j.PayType, &j.PayAmount, &coursesJSON, &j.VerificationTier,
		&j.JobDescription, &j.JobSummary, &responsibilitiesJSON, &mustHaveJSON,
		&niceToHaveJSON, &j.ApplicationDeadline, &j.MaxApplicants, &perksJSON,
		&skillsJSON, &j.Status, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// Parse JSONB fields
	_ = json.Unmarshal(coursesJSON, &j.RecommendedCourses)
	_ = json.Unmarshal(responsibilitiesJSON, &j.Responsibilities)
	_ = json.Unmarshal(mustHaveJSON, &j.MustHaveQualifications)
	_ = json.Unmarshal(niceToHaveJSON, &j.NiceToHaveQualifications)
	_ = json.Unmarshal(perksJSON, &j.PerksAndBenefits)
	_ = json.Unmarshal(skillsJSON, &j.AISkills)

	return &j, nil
}

func marshalList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal list column: %w", err)
	}
	return data, nil
}
