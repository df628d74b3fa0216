package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/domain/entity"
)

const imageColumns = `id, product_id, path, filename, status, is_primary, sort_order,
		file_size, mime_type, width, height, alt_text, variants, error_message,
		uploaded_at, processed_at`

type ImageRepo struct {
	pool *pgxpool.Pool
}

func NewImageRepo(pool *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{pool: pool}
}

func (r *ImageRepo) Create(ctx context.Context, image *entity.Image) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if image.IsPrimary {
		// Unconditional demote: locking every sibling keeps concurrent
		// primary flips serialized without partial-index violations.
		if _, err := tx.Exec(ctx,
			`UPDATE product_images SET is_primary = FALSE WHERE product_id = $1`,
			image.ProductID,
		); err != nil {
			return fmt.Errorf("demoting existing primary: %w", err)
		}
	}

	query := `
		INSERT INTO product_images (` + imageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = tx.Exec(ctx, query,
		image.ID, image.ProductID, image.Path, image.Filename, image.Status,
		image.IsPrimary, image.SortOrder, image.FileSize, image.MimeType,
		image.Width, image.Height, image.AltText, image.Variants,
		image.ErrorMessage, image.UploadedAt, image.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting image: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (r *ImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM product_images WHERE id = $1`

	image, err := scanImage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("querying image: %w", err)
	}
	return image, nil
}

func (r *ImageRepo) ListByProduct(ctx context.Context, productID string) ([]entity.Image, error) {
	query := `
		SELECT ` + imageColumns + `
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, sort_order ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying images: %w", err)
	}
	defer rows.Close()

	return collectImages(rows)
}

func (r *ImageRepo) Update(ctx context.Context, image *entity.Image) error {
	query := `UPDATE product_images SET alt_text = $2, sort_order = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, image.ID, image.AltText, image.SortOrder)
	if err != nil {
		return fmt.Errorf("updating image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ImageStatus) error {
	query := `UPDATE product_images SET status = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("updating image status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepo) UpdateProcessingResult(ctx context.Context, image *entity.Image) error {
	query := `
		UPDATE product_images
		SET status = $2, mime_type = $3, width = $4, height = $5,
			variants = $6, error_message = '', processed_at = $7
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		image.ID, image.Status, image.MimeType, image.Width, image.Height,
		image.Variants, image.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("updating processing result: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepo) MarkError(ctx context.Context, id uuid.UUID, message string) error {
	query := `UPDATE product_images SET status = $2, error_message = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, entity.StatusError, message)
	if err != nil {
		return fmt.Errorf("marking image error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepo) SetPrimary(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var productID string
	err = tx.QueryRow(ctx, `SELECT product_id FROM product_images WHERE id = $1`, id).Scan(&productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrImageNotFound
		}
		return fmt.Errorf("querying image product: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE product_images SET is_primary = FALSE WHERE product_id = $1`,
		productID,
	); err != nil {
		return fmt.Errorf("demoting siblings: %w", err)
	}

	result, err := tx.Exec(ctx, `UPDATE product_images SET is_primary = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("promoting image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (r *ImageRepo) ClearPrimary(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `UPDATE product_images SET is_primary = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("clearing primary flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var productID string
	var wasPrimary bool
	err = tx.QueryRow(ctx,
		`DELETE FROM product_images WHERE id = $1 RETURNING product_id, is_primary`,
		id,
	).Scan(&productID, &wasPrimary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrImageNotFound
		}
		return fmt.Errorf("deleting image: %w", err)
	}

	if wasPrimary {
		// Primary handoff: the next sibling by display order inherits.
		if _, err := tx.Exec(ctx, `
			UPDATE product_images SET is_primary = TRUE
			WHERE id = (
				SELECT id FROM product_images
				WHERE product_id = $1
				ORDER BY sort_order ASC, id ASC
				LIMIT 1
			)
		`, productID); err != nil {
			return fmt.Errorf("promoting next primary: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (r *ImageRepo) ListByStatus(ctx context.Context, status entity.ImageStatus) ([]entity.Image, error) {
	query := `
		SELECT ` + imageColumns + `
		FROM product_images
		WHERE status = $1
		ORDER BY uploaded_at ASC
	`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("querying images by status: %w", err)
	}
	defer rows.Close()

	return collectImages(rows)
}

func (r *ImageRepo) CountByStatus(ctx context.Context) (map[entity.ImageStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM product_images GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting images by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.ImageStatus]int)
	for rows.Next() {
		var status entity.ImageStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanImage(row pgx.Row) (*entity.Image, error) {
	var image entity.Image
	err := row.Scan(
		&image.ID, &image.ProductID, &image.Path, &image.Filename, &image.Status,
		&image.IsPrimary, &image.SortOrder, &image.FileSize, &image.MimeType,
		&image.Width, &image.Height, &image.AltText, &image.Variants,
		&image.ErrorMessage, &image.UploadedAt, &image.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func collectImages(rows pgx.Rows) ([]entity.Image, error) {
	var images []entity.Image
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, *image)
	}
	return images, rows.Err()
}
