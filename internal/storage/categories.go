package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/mattn/go-sqlite3"
)

const categoryColumns = `id, name, COALESCE(description, ''), color, icon, category_type,
	is_default, user_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (model.Category, error) {
	var (
		cat      model.Category
		color    sql.NullString
		icon     sql.NullString
		userID   sql.NullInt64
		typeName string
	)
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Description, &color, &icon, &typeName,
		&cat.IsDefault, &userID, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
		return cat, err
	}
	cat.Type = model.CategoryType(typeName)
	cat.Color = color.String
	cat.Icon = icon.String
	if userID.Valid {
		owner := userID.Int64
		cat.UserID = &owner
	}
	return cat, nil
}

// FindCategories returns the categories visible to userID.
func (s *SQLiteStorage) FindCategories(ctx context.Context, userID int64, direction *model.CategoryType) ([]model.Category, error) {
	return findCategories(ctx, s.db, userID, direction)
}

// GetVisibleCategory returns the category when userID may use it, nil otherwise.
func (s *SQLiteStorage) GetVisibleCategory(ctx context.Context, userID, categoryID int64) (*model.Category, error) {
	return getVisibleCategory(ctx, s.db, userID, categoryID)
}

// GetCategory returns a category by id regardless of owner.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return getCategory(ctx, s.db, id)
}

// CreateCategory inserts a category and sets its ID.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) error {
	return createCategory(ctx, s.db, category)
}

// SeedDefaultCategories inserts the built-in categories that are missing.
func (s *SQLiteStorage) SeedDefaultCategories(ctx context.Context) (int, error) {
	return seedDefaultCategories(ctx, s.db)
}

func (t *sqliteTransaction) FindCategories(ctx context.Context, userID int64, direction *model.CategoryType) ([]model.Category, error) {
	return findCategories(ctx, t.tx, userID, direction)
}

func (t *sqliteTransaction) GetVisibleCategory(ctx context.Context, userID, categoryID int64) (*model.Category, error) {
	return getVisibleCategory(ctx, t.tx, userID, categoryID)
}

func (t *sqliteTransaction) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return getCategory(ctx, t.tx, id)
}

func (t *sqliteTransaction) CreateCategory(ctx context.Context, category *model.Category) error {
	return createCategory(ctx, t.tx, category)
}

func (t *sqliteTransaction) SeedDefaultCategories(ctx context.Context) (int, error) {
	return seedDefaultCategories(ctx, t.tx)
}

func findCategories(ctx context.Context, q queryable, userID int64, direction *model.CategoryType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE (is_default = 1 OR user_id = ?)`
	args := []any{userID}
	if direction != nil {
		if !direction.Valid() {
			return nil, fmt.Errorf("%w: direction %q", common.ErrInvalidInput, *direction)
		}
		query += ` AND category_type = ?`
		args = append(args, string(*direction))
	}
	// Defaults first so that a user's own category with the same name takes precedence
	// when callers index by name.
	query += ` ORDER BY is_default DESC, id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []model.Category{}
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category: %w", scanErr)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "user_id", userID, "count", len(categories))
	return categories, nil
}

func getVisibleCategory(ctx context.Context, q queryable, userID, categoryID int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = ? AND (is_default = 1 OR user_id = ?)`

	cat, err := scanCategory(q.QueryRowContext(ctx, query, categoryID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &cat, nil
}

func getCategory(ctx context.Context, q queryable, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	cat, err := scanCategory(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &cat, nil
}

func createCategory(ctx context.Context, q queryable, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	now := time.Now()
	var owner any
	if category.UserID != nil {
		owner = *category.UserID
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO categories (name, description, color, icon, category_type, is_default, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(category.Name), category.Description, nullString(category.Color), nullString(category.Icon),
		string(category.Type), category.IsDefault, owner, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", category.Name, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get category ID: %w", err)
	}
	category.ID = id
	category.Name = strings.TrimSpace(category.Name)
	category.CreatedAt = now
	category.UpdatedAt = now

	slog.Info("created category", "id", id, "name", category.Name, "type", category.Type)
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
