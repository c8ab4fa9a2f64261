package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/recipe-catalog-service/internal/model"
	"github.com/maxviazov/recipe-catalog-service/internal/repository"
)

type ingredientRepository struct {
	pool *pgxpool.Pool
	tx   repository.TxManager
}

func NewIngredientRepository(pool *pgxpool.Pool) repository.IngredientRepository {
	return &ingredientRepository{pool: pool, tx: NewTxManager(pool)}
}

func (r *ingredientRepository) List(ctx context.Context, search string, p repository.Page) (repository.PageResult[model.Ingredient], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Ingredient]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)

	var w whereBuilder
	if search != "" {
		w.add(`i.name ILIKE ?`, likePattern(search))
	}

	res := repository.EmptyResult[model.Ingredient]()
	err := r.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		exec := getQ(ctx, r.pool)
		if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM ingredients i`+w.sql(), w.args...).Scan(&res.Total); err != nil {
			return err
		}
		if res.Past(offset) {
			return nil
		}

		lw := whereBuilder{args: append([]any(nil), w.args...)}
		limitPH := lw.next(limit)
		offsetPH := lw.next(offset)
		rows, err := exec.Query(ctx,
			`SELECT i.id, i.name, i.unit, COUNT(ri.recipe_id) AS recipe_count, i.created_at
			 FROM ingredients i
			 LEFT JOIN recipe_ingredients ri ON ri.ingredient_id = i.id`+w.sql()+`
			 GROUP BY i.id
			 ORDER BY i.name, i.id
			 LIMIT `+limitPH+` OFFSET `+offsetPH,
			lw.args...,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		res.Items = make([]model.Ingredient, 0, limit)
		for rows.Next() {
			var in model.Ingredient
			if err := rows.Scan(&in.ID, &in.Name, &in.Unit, &in.RecipeCount, &in.CreatedAt); err != nil {
				return err
			}
			res.Items = append(res.Items, in)
		}
		return rows.Err()
	})
	if err != nil {
		return repository.PageResult[model.Ingredient]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.IngredientRepository = (*ingredientRepository)(nil)
