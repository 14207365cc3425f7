// File path: internal/store/queries.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MADDY123987/AI-presentation-doc-generator/internal/document"
)

type projectRow struct {
	ID        int64     `db:"id"`
	OwnerID   int64     `db:"owner_id"`
	Title     string    `db:"title"`
	Topic     string    `db:"topic"`
	DocType   string    `db:"doc_type"`
	NumPages  int       `db:"num_pages"`
	NumSlides int       `db:"num_slides"`
	CreatedAt time.Time `db:"created_at"`
}

type sectionRow struct {
	ID           int64  `db:"id"`
	ProjectID    int64  `db:"project_id"`
	Heading      string `db:"heading"`
	OrderIndex   int    `db:"order_index"`
	PageNumber   int    `db:"page_number"`
	SectionIndex int    `db:"section_index"`
	Content      string `db:"content"`
	History      string `db:"history"`
	Feedback     string `db:"feedback"`
	Comment      string `db:"comment"`
}

func (r projectRow) toDomain() document.Project {
	return document.Project{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Title:     r.Title,
		Topic:     r.Topic,
		DocType:   document.DocType(r.DocType),
		NumPages:  r.NumPages,
		NumSlides: r.NumSlides,
		CreatedAt: r.CreatedAt,
	}
}

func (r sectionRow) toDomain() (document.Section, error) {
	var history []document.Revision
	if r.History != "" {
		if err := json.Unmarshal([]byte(r.History), &history); err != nil {
			return document.Section{}, fmt.Errorf("decode section %d history: %w", r.ID, err)
		}
	}
	return document.Section{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		Heading:      r.Heading,
		OrderIndex:   r.OrderIndex,
		PageNumber:   r.PageNumber,
		SectionIndex: r.SectionIndex,
		Content:      r.Content,
		History:      history,
		Feedback:     r.Feedback,
		Comment:      r.Comment,
	}, nil
}

// CreateProject inserts the project row and assigns its ID.
func (s *Store) CreateProject(ctx context.Context, project *document.Project) error {
	if project == nil {
		return errors.New("nil project")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (owner_id, title, topic, doc_type, num_pages, num_slides)
                 VALUES (?, ?, ?, ?, ?, ?)`,
		project.OwnerID, project.Title, project.Topic, string(project.DocType), project.NumPages, project.NumSlides)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("project id: %w", err)
	}
	project.ID = id
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	return nil
}

// InsertSections stores all sections of a project in one transaction and
// returns them with assigned IDs. Project creation is all-or-nothing: a
// failure rolls the whole batch back.
func (s *Store) InsertSections(ctx context.Context, sections []document.Section) ([]document.Section, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin insert sections: %w", err)
	}
	out := make([]document.Section, 0, len(sections))
	for _, section := range sections {
		history, err := json.Marshal(section.History)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("encode history: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO sections (project_id, heading, order_index, page_number, section_index, content, history, feedback, comment)
                         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			section.ProjectID, section.Heading, section.OrderIndex, section.PageNumber,
			section.SectionIndex, section.Content, string(history), section.Feedback, section.Comment)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("insert section %q: %w", section.Heading, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("section id: %w", err)
		}
		section.ID = id
		out = append(out, section)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert sections: %w", err)
	}
	return out, nil
}

// GetProject loads one project with its sections in layout order.
func (s *Store) GetProject(ctx context.Context, id int64) (*document.Project, error) {
	var row projectRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM projects WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select project: %w", err)
	}
	project := row.toDomain()
	sections, err := s.ListSections(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Sections = sections
	return &project, nil
}

// ListSections returns a project's sections ordered by page number, then
// intra-page index, then global order.
func (s *Store) ListSections(ctx context.Context, projectID int64) ([]document.Section, error) {
	var rows []sectionRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM sections WHERE project_id = ?
                 ORDER BY page_number, section_index, order_index`, projectID)
	if err != nil {
		return nil, fmt.Errorf("select sections: %w", err)
	}
	sections := make([]document.Section, 0, len(rows))
	for _, row := range rows {
		section, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// GetSection loads one section scoped to its project.
func (s *Store) GetSection(ctx context.Context, projectID, sectionID int64) (*document.Section, error) {
	var row sectionRow
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM sections WHERE id = ? AND project_id = ?`, sectionID, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select section: %w", err)
	}
	section, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// UpdateSectionRevision persists a section's current content and history.
func (s *Store) UpdateSectionRevision(ctx context.Context, section *document.Section) error {
	if section == nil {
		return errors.New("nil section")
	}
	history, err := json.Marshal(section.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sections SET content = ?, history = ? WHERE id = ? AND project_id = ?`,
		section.Content, string(history), section.ID, section.ProjectID)
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSectionFeedback stores like/dislike plus an optional comment.
func (s *Store) SetSectionFeedback(ctx context.Context, projectID, sectionID int64, feedback, comment string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sections SET feedback = ?, comment = CASE WHEN ? != '' THEN ? ELSE comment END
                 WHERE id = ? AND project_id = ?`,
		feedback, comment, comment, sectionID, projectID)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveDeck stores the normalized slide deck of a pptx project.
func (s *Store) SaveDeck(ctx context.Context, projectID int64, slides []document.Slide) error {
	payload, err := json.Marshal(slides)
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO decks (project_id, slides) VALUES (?, ?)
                 ON CONFLICT(project_id) DO UPDATE SET slides = excluded.slides`,
		projectID, string(payload))
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

// GetDeck loads the slide deck of a pptx project.
func (s *Store) GetDeck(ctx context.Context, projectID int64) ([]document.Slide, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload, `SELECT slides FROM decks WHERE project_id = ?`, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select deck: %w", err)
	}
	var slides []document.Slide
	if err := json.Unmarshal([]byte(payload), &slides); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	return slides, nil
}
