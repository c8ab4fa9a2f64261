package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/repository"
)

type reviewRepository struct {
	pool *pgxpool.Pool
	tx   repository.TxManager
}

func NewReviewRepository(pool *pgxpool.Pool) repository.ReviewRepository {
	return &reviewRepository{pool: pool, tx: NewTxManager(pool)}
}

func (r *reviewRepository) ListByRecipe(ctx context.Context, recipeID int64, p repository.Page) (repository.PageResult[model.Review], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Review]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)

	res := repository.EmptyResult[model.Review]()
	err := r.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		exec := getQ(ctx, r.pool)
		var exists bool
		if err := exec.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM recipes WHERE id = $1)`, recipeID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE recipe_id = $1`, recipeID).Scan(&res.Total); err != nil {
			return err
		}
		if res.Past(offset) {
			return nil
		}
		rows, err := exec.Query(ctx,
			`SELECT id, recipe_id, author_name, rating, body, created_at
			 FROM reviews
			 WHERE recipe_id = $1
			 ORDER BY created_at DESC, id DESC
			 LIMIT $2 OFFSET $3`,
			recipeID, limit, offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		res.Items = make([]model.Review, 0, limit)
		for rows.Next() {
			var rv model.Review
			if err := rows.Scan(&rv.ID, &rv.RecipeID, &rv.AuthorName, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
				return err
			}
			res.Items = append(res.Items, rv)
		}
		return rows.Err()
	})
	if err != nil {
		return repository.PageResult[model.Review]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.ReviewRepository = (*reviewRepository)(nil)
