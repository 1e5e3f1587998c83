package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vicbrooke/cyber-kittens/internal/domain"
	"github.com/vicbrooke/cyber-kittens/internal/repository"
)

const createKittensTable = `
CREATE TABLE IF NOT EXISTS kittens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	age INTEGER NOT NULL,
	color TEXT NOT NULL,
	owner_id INTEGER NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type KittenRepository struct {
	db *sql.DB
}

func NewKittenRepository(db *sql.DB) repository.KittenRepository {
	return &KittenRepository{db: db}
}

func (r *KittenRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createKittensTable); err != nil {
		return fmt.Errorf("create kittens table: %w", err)
	}
	return nil
}

func (r *KittenRepository) Create(ctx context.Context, kitten *domain.Kitten) (int64, error) {
	now := time.Now().UTC()
	kitten.CreatedAt = now
	kitten.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO kittens (name, age, color, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		kitten.Name,
		kitten.Age,
		kitten.Color,
		kitten.OwnerID,
		kitten.CreatedAt,
		kitten.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert kitten: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("kitten last insert id: %w", err)
	}
	kitten.ID = id
	return id, nil
}

func (r *KittenRepository) Get(ctx context.Context, id int64) (*domain.Kitten, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT k.id, k.name, k.age, k.color, k.owner_id, u.username, k.created_at, k.updated_at
FROM kittens k
JOIN users u ON u.id = k.owner_id
WHERE k.id = ?`,
		id,
	)

	var kitten domain.Kitten
	if err := row.Scan(
		&kitten.ID,
		&kitten.Name,
		&kitten.Age,
		&kitten.Color,
		&kitten.OwnerID,
		&kitten.OwnerUsername,
		&kitten.CreatedAt,
		&kitten.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan kitten: %w", err)
	}
	return &kitten, nil
}

func (r *KittenRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Kitten, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, age, color, owner_id, created_at, updated_at
FROM kittens
WHERE owner_id = ?
ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list kittens: %w", err)
	}
	defer rows.Close()

	var kittens []domain.Kitten
	for rows.Next() {
		var kitten domain.Kitten
		if err := rows.Scan(
			&kitten.ID,
			&kitten.Name,
			&kitten.Age,
			&kitten.Color,
			&kitten.OwnerID,
			&kitten.CreatedAt,
			&kitten.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan kitten: %w", err)
		}
		kittens = append(kittens, kitten)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kittens: %w", err)
	}
	return kittens, nil
}

func (r *KittenRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kittens WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete kitten: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete kitten rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
