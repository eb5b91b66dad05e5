package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"ktirio-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

const projectColumns = "id, user_id, name, folder_id, base_image_path, base_image_url, is_favorite, is_archived, created_at, updated_at"

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.FolderID, &p.BaseImagePath, &p.BaseImageURL,
		&p.IsFavorite, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DatabaseClient) CreateProject(userID uuid.UUID, name string) (*models.Project, error) {
	row := d.db.QueryRow(`
		INSERT INTO projects (user_id, name)
		VALUES ($1, $2)
		RETURNING `+projectColumns+`
	`, userID, name)

	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

func (d *DatabaseClient) GetProject(projectID, userID uuid.UUID) (*models.Project, error) {
	row := d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID)

	p, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (d *DatabaseClient) ListProjects(userID uuid.UUID, filter models.ProjectFilter) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1`
	args := []interface{}{userID}
	if filter.Favorite != nil {
		args = append(args, *filter.Favorite)
		query += fmt.Sprintf(" AND is_favorite = $%d", len(args))
	}
	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		query += fmt.Sprintf(" AND is_archived = $%d", len(args))
	}
	switch {
	case filter.Unfiled:
		query += " AND folder_id IS NULL"
	case filter.FolderID != nil:
		args = append(args, *filter.FolderID)
		query += fmt.Sprintf(" AND folder_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}

	return projects, nil
}

func (d *DatabaseClient) UpdateProjectName(projectID, userID uuid.UUID, name string) error {
	_, err := d.db.Exec(`
		UPDATE projects
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, name, projectID, userID)
	return err
}

func (d *DatabaseClient) UpdateProjectFolder(projectID, userID uuid.UUID, folderID uuid.NullUUID) error {
	_, err := d.db.Exec(`
		UPDATE projects
		SET folder_id = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, folderID, projectID, userID)
	return err
}

func (d *DatabaseClient) UpdateProjectFlags(projectID, userID uuid.UUID, isFavorite, isArchived bool) error {
	_, err := d.db.Exec(`
		UPDATE projects
		SET is_favorite = $1, is_archived = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, isFavorite, isArchived, projectID, userID)
	return err
}

// SetProjectBaseImage replaces the base image and wipes the version history
// in one transaction: a new upload resets the project's progress.
func (d *DatabaseClient) SetProjectBaseImage(projectID, userID uuid.UUID, storagePath, storageURL string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE projects
		SET base_image_path = $1, base_image_url = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
	`, storagePath, storageURL, projectID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to set base image: %w", err)
	}

	if _, err := tx.Exec(`
		DELETE FROM project_versions
		WHERE project_id = $1 AND user_id = $2
	`, projectID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to reset history: %w", err)
	}

	return tx.Commit()
}

// AppendProjectVersion inserts a history entry at the next free position.
func (d *DatabaseClient) AppendProjectVersion(v *models.ProjectVersion) error {
	err := d.db.QueryRow(`
		INSERT INTO project_versions (project_id, user_id, position, storage_path, storage_url, mime_type)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position) + 1, 0) FROM project_versions WHERE project_id = $1), $3, $4, $5)
		RETURNING id, position, created_at
	`, v.ProjectID, v.UserID, v.StoragePath, v.StorageURL, v.MimeType).Scan(&v.ID, &v.Position, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append version: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetProjectVersions(projectID, userID uuid.UUID) ([]models.ProjectVersion, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, user_id, position, storage_path, storage_url, mime_type, created_at
		FROM project_versions
		WHERE project_id = $1 AND user_id = $2
		ORDER BY position ASC
	`, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get versions: %w", err)
	}
	defer rows.Close()

	var versions []models.ProjectVersion
	for rows.Next() {
		var v models.ProjectVersion
		err := rows.Scan(
			&v.ID, &v.ProjectID, &v.UserID, &v.Position,
			&v.StoragePath, &v.StorageURL, &v.MimeType, &v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}

	return versions, nil
}

// CountProjectVersionsByProject returns per-project version counts for a user
// in one query; the gallery listing joins them onto its summaries.
func (d *DatabaseClient) CountProjectVersionsByProject(userID uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := d.db.Query(`
		SELECT project_id, COUNT(*)
		FROM project_versions
		WHERE user_id = $1
		GROUP BY project_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count versions: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var projectID uuid.UUID
		var count int
		if err := rows.Scan(&projectID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan version count: %w", err)
		}
		counts[projectID] = count
	}

	return counts, nil
}

func (d *DatabaseClient) DeleteProject(projectID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID)
	return err
}

func (d *DatabaseClient) CreateFolder(userID uuid.UUID, name string) (*models.Folder, error) {
	var f models.Folder
	err := d.db.QueryRow(`
		INSERT INTO folders (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`, userID, name).Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return &f, nil
}

func (d *DatabaseClient) ListFolders(userID uuid.UUID) ([]models.Folder, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, created_at
		FROM folders
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	return folders, nil
}

func (d *DatabaseClient) RenameFolder(folderID, userID uuid.UUID, name string) error {
	_, err := d.db.Exec(`
		UPDATE folders
		SET name = $1
		WHERE id = $2 AND user_id = $3
	`, name, folderID, userID)
	return err
}

// DeleteFolder removes a folder; its projects become unfiled rather than
// being deleted with it.
func (d *DatabaseClient) DeleteFolder(folderID, userID uuid.UUID) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE projects
		SET folder_id = NULL, updated_at = NOW()
		WHERE folder_id = $1 AND user_id = $2
	`, folderID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to unfile projects: %w", err)
	}

	if _, err := tx.Exec(`
		DELETE FROM folders
		WHERE id = $1 AND user_id = $2
	`, folderID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	return tx.Commit()
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
