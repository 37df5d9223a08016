package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, user_id, description, amount, transaction_type, category_id,
	external_id, date, created_at, updated_at`

// SaveTransactions saves multiple transactions to the database and returns how many
// were inserted. Transactions whose external ID was already imported for the same user
// are skipped.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted, err := saveTransactions(ctx, tx, transactions)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}
	return inserted, nil
}

// GetTransaction returns a transaction by id.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	return getTransaction(ctx, s.db, id)
}

// FindUncategorizedTransactions returns up to limit transactions of userID without a
// category, in id order.
func (s *SQLiteStorage) FindUncategorizedTransactions(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	return findUncategorizedTransactions(ctx, s.db, userID, limit)
}

// FindCategorizedTransactions returns every categorized transaction of userID, in id order.
func (s *SQLiteStorage) FindCategorizedTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return findCategorizedTransactions(ctx, s.db, userID)
}

// UpdateTransactionCategory assigns a category to a transaction.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, transactionID, categoryID int64) error {
	return updateTransactionCategory(ctx, s.db, transactionID, categoryID)
}

func (t *sqliteTransaction) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return saveTransactions(ctx, t.tx, transactions)
}

func (t *sqliteTransaction) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	return getTransaction(ctx, t.tx, id)
}

func (t *sqliteTransaction) FindUncategorizedTransactions(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	return findUncategorizedTransactions(ctx, t.tx, userID, limit)
}

func (t *sqliteTransaction) FindCategorizedTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return findCategorizedTransactions(ctx, t.tx, userID)
}

func (t *sqliteTransaction) UpdateTransactionCategory(ctx context.Context, transactionID, categoryID int64) error {
	return updateTransactionCategory(ctx, t.tx, transactionID, categoryID)
}

func saveTransactions(ctx context.Context, q queryable, transactions []model.Transaction) (int, error) {
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	now := time.Now()
	inserted := 0
	for i := range transactions {
		txn := &transactions[i]
		if txn.Date.IsZero() {
			txn.Date = now
		}

		result, err := q.ExecContext(ctx, `
			INSERT OR IGNORE INTO transactions (
				user_id, description, amount, transaction_type, category_id,
				external_id, date, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			txn.UserID,
			txn.Description,
			txn.Amount.String(),
			nullString(string(txn.Type)),
			nullInt64(txn.CategoryID),
			nullString(txn.ExternalID),
			txn.Date,
			now,
			now,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert transaction %q: %w", txn.Description, err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			slog.Debug("skipped already imported transaction", "external_id", txn.ExternalID)
			continue
		}

		id, err := result.LastInsertId()
		if err != nil {
			return inserted, fmt.Errorf("failed to get transaction ID: %w", err)
		}
		txn.ID = id
		txn.CreatedAt = now
		txn.UpdatedAt = now
		inserted++
	}

	slog.Debug("saved transactions", "requested", len(transactions), "inserted", inserted)
	return inserted, nil
}

func getTransaction(ctx context.Context, q queryable, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`
	txn, err := scanTransaction(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return &txn, nil
}

func findUncategorizedTransactions(ctx context.Context, q queryable, userID int64, limit int) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = ? AND category_id IS NULL
		ORDER BY id
		LIMIT ?`
	return queryTransactions(ctx, q, query, userID, limit)
}

func findCategorizedTransactions(ctx context.Context, q queryable, userID int64) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = ? AND category_id IS NOT NULL
		ORDER BY id`
	return queryTransactions(ctx, q, query, userID)
}

func updateTransactionCategory(ctx context.Context, q queryable, transactionID, categoryID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(transactionID, "transactionID"); err != nil {
		return err
	}
	if err := validateID(categoryID, "categoryID"); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx,
		`UPDATE transactions SET category_id = ?, updated_at = ? WHERE id = ?`,
		categoryID, time.Now(), transactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", transactionID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction %d: %w", transactionID, common.ErrNotFound)
	}
	return nil
}

func queryTransactions(ctx context.Context, q queryable, query string, args ...any) ([]model.Transaction, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var (
		txn        model.Transaction
		amount     string
		txnType    sql.NullString
		categoryID sql.NullInt64
		externalID sql.NullString
	)
	if err := row.Scan(&txn.ID, &txn.UserID, &txn.Description, &amount, &txnType, &categoryID,
		&externalID, &txn.Date, &txn.CreatedAt, &txn.UpdatedAt); err != nil {
		return txn, err
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return txn, fmt.Errorf("transaction %d has malformed amount %q: %w", txn.ID, amount, err)
	}
	txn.Amount = parsed
	txn.Type = model.CategoryType(txnType.String)
	txn.ExternalID = externalID.String
	if categoryID.Valid {
		id := categoryID.Int64
		txn.CategoryID = &id
	}
	return txn, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
