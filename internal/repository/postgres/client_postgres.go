package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"clientrepo/internal/model"
	"clientrepo/internal/repository"
)

// ClientPostgres is a PostgreSQL implementation of repository.RowStore.
// Every operation is one parameterized statement; mutations commit in their own
// transaction. The *sql.DB is owned by the caller.
type ClientPostgres struct {
	db  *sql.DB
	log *zap.Logger
}

// NewClientPostgres creates a new ClientPostgres row store. A nil logger disables logging.
func NewClientPostgres(db *sql.DB, log *zap.Logger) *ClientPostgres {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClientPostgres{db: db, log: log.Named("clients_postgres")}
}

var _ repository.RowStore = (*ClientPostgres)(nil)

const selectColumns = `SELECT id, first_name, last_name, father_name, haircut_counter, discount FROM clients`

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(s scanner) (model.Client, error) {
	var c model.Client
	err := s.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.FatherName,
		&c.HaircutCounter,
		&c.Discount,
	)
	return c, err
}

func readErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", repository.ErrStorageUnavailable, op, err)
}

func writeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", repository.ErrStorageWrite, op, err)
}

// inTx runs fn inside its own transaction and commits it.
func (r *ClientPostgres) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// GetByID fetches a single client. It returns nil when the row does not exist.
func (r *ClientPostgres) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	if id < 0 {
		return nil, nil
	}
	const q = selectColumns + ` WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, readErr("select client", err)
	}
	return &c, nil
}

// GetPage returns the k-th page of n clients ordered by id.
func (r *ClientPostgres) GetPage(ctx context.Context, k, n int) ([]model.Client, error) {
	// An offset past math.MaxInt cannot address any row.
	if n <= 0 || k <= 0 || k-1 > math.MaxInt/n {
		return []model.Client{}, nil
	}
	const q = selectColumns + ` ORDER BY id LIMIT $1 OFFSET $2`
	return r.query(ctx, "select clients page", q, n, (k-1)*n)
}

// GetAll returns every client ordered by id.
func (r *ClientPostgres) GetAll(ctx context.Context) ([]model.Client, error) {
	const q = selectColumns + ` ORDER BY id`
	return r.query(ctx, "select clients", q)
}

func (r *ClientPostgres) query(ctx context.Context, op, q string, args ...any) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, readErr(op, err)
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, readErr(op, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, readErr(op, err)
	}
	return items, nil
}

// Add inserts a client and returns the id generated by the database.
func (r *ClientPostgres) Add(ctx context.Context, c model.Client) (int64, error) {
	const q = `
		INSERT INTO clients (first_name, last_name, father_name, haircut_counter, discount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, q,
			c.FirstName,
			c.LastName,
			c.FatherName,
			c.HaircutCounter,
			c.Discount,
		).Scan(&id)
	})
	if err != nil {
		return repository.NotAdded, writeErr("insert client", err)
	}
	return id, nil
}

// ReplaceByID updates every column of the row with the given id.
func (r *ClientPostgres) ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error) {
	if id < 0 {
		return false, nil
	}
	const q = `
		UPDATE clients
		SET first_name = $1,
		    last_name = $2,
		    father_name = $3,
		    haircut_counter = $4,
		    discount = $5
		WHERE id = $6
	`
	return r.execAffected(ctx, "update client", q,
		c.FirstName,
		c.LastName,
		c.FatherName,
		c.HaircutCounter,
		c.Discount,
		id,
	)
}

// DeleteByID removes the row with the given id.
func (r *ClientPostgres) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if id < 0 {
		return false, nil
	}
	const q = `DELETE FROM clients WHERE id = $1`
	return r.execAffected(ctx, "delete client", q, id)
}

func (r *ClientPostgres) execAffected(ctx context.Context, op, q string, args ...any) (bool, error) {
	var affected int64
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, writeErr(op, err)
	}
	return affected > 0, nil
}

// Count returns the number of rows.
func (r *ClientPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM clients`
	var total int
	if err := r.db.QueryRowContext(ctx, q).Scan(&total); err != nil {
		return 0, readErr("count clients", err)
	}
	return total, nil
}

// ClearAll truncates the table and restarts id generation.
func (r *ClientPostgres) ClearAll(ctx context.Context) bool {
	const q = `TRUNCATE TABLE clients RESTART IDENTITY CASCADE`
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q)
		return err
	})
	if err != nil {
		r.log.Error("clear clients failed", zap.Error(err))
		return false
	}
	r.log.Info("clients table cleared")
	return true
}
