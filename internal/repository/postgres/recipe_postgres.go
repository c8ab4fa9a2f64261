package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/repository"
)

type recipeRepository struct {
	pool *pgxpool.Pool
	tx   repository.TxManager
}

func NewRecipeRepository(pool *pgxpool.Pool) repository.RecipeRepository {
	return &recipeRepository{pool: pool, tx: NewTxManager(pool)}
}

// recipeColumns aggregates review stats per recipe; rating is rounded to one decimal.
const recipeColumns = `
	r.id, r.title, r.summary, r.author_name, r.prep_minutes,
	COALESCE(ROUND(AVG(rv.rating)::numeric, 1), 0)::real AS average_rating,
	COUNT(rv.id) AS review_count,
	r.created_at, r.updated_at`

func scanRecipe(row pgx.Row) (model.Recipe, error) {
	var out model.Recipe
	err := row.Scan(
		&out.ID, &out.Title, &out.Summary, &out.AuthorName, &out.PrepMinutes,
		&out.AverageRating, &out.ReviewCount,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (model.Recipe, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Recipe{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT `+recipeColumns+`
		 FROM recipes r
		 LEFT JOIN reviews rv ON rv.recipe_id = r.id
		 WHERE r.id = $1
		 GROUP BY r.id`, id,
	)
	out, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Recipe{}, repository.ErrNotFound
		}
		return model.Recipe{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *recipeRepository) List(ctx context.Context, f model.RecipeFilter, p repository.Page) (repository.PageResult[model.Recipe], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Recipe]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)

	var w whereBuilder
	if f.Search != "" {
		w.add(`(r.title ILIKE ? OR r.summary ILIKE ?)`, likePattern(f.Search))
	}
	if f.IngredientID > 0 {
		w.add(`EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = r.id AND ri.ingredient_id = ?)`, f.IngredientID)
	}

	res := repository.EmptyResult[model.Recipe]()
	err := r.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		exec := getQ(ctx, r.pool)
		if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM recipes r`+w.sql(), w.args...).Scan(&res.Total); err != nil {
			return err
		}
		if res.Past(offset) {
			return nil
		}

		args := append([]any(nil), w.args...)
		lw := whereBuilder{args: args}
		limitPH := lw.next(limit)
		offsetPH := lw.next(offset)
		rows, err := exec.Query(ctx,
			`SELECT `+recipeColumns+`
			 FROM recipes r
			 LEFT JOIN reviews rv ON rv.recipe_id = r.id`+w.sql()+`
			 GROUP BY r.id
			 ORDER BY r.created_at DESC, r.id DESC
			 LIMIT `+limitPH+` OFFSET `+offsetPH,
			lw.args...,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		res.Items = make([]model.Recipe, 0, limit)
		for rows.Next() {
			rec, err := scanRecipe(rows)
			if err != nil {
				return err
			}
			res.Items = append(res.Items, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return repository.PageResult[model.Recipe]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.RecipeRepository = (*recipeRepository)(nil)
