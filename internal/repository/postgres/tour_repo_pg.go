package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tourista/tourista-api/internal/domain"
)

type TourRepository struct {
	db *sqlx.DB
}

func NewTourRepo(db *sqlx.DB) *TourRepository {
	return &TourRepository{db: db}
}

type tourRow struct {
	domain.Tour
	Tags pq.StringArray `db:"tags"`
}

func (row *tourRow) toDomain() *domain.Tour {
	tour := row.Tour
	tour.Tags = []string(row.Tags)
	return &tour
}

func (r *TourRepository) Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	const query = `
        INSERT INTO tour (name, summary, price, difficulty, rating, tags)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, name, summary, price, difficulty, rating, tags, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query,
		tour.Name, tour.Summary, tour.Price, tour.Difficulty, tour.Rating, pq.StringArray(tour.Tags))
	var created tourRow
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}

func (r *TourRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	const query = `
        SELECT id, name, summary, price, difficulty, rating, tags, created_at, updated_at
        FROM tour
        WHERE id = $1
    `
	var row tourRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *TourRepository) List(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, error) {
	var builder strings.Builder
	builder.WriteString(`
        SELECT id, name, summary, price, difficulty, rating, tags, created_at, updated_at
        FROM tour
        WHERE TRUE
    `)

	params := make([]any, 0, 6)

	if trimmed := strings.TrimSpace(filter.Search); trimmed != "" {
		placeholder := fmt.Sprintf("$%d", len(params)+1)
		builder.WriteString("\n\tAND (name ILIKE " + placeholder + " OR summary ILIKE " + placeholder + ")")
		params = append(params, "%"+trimmed+"%")
	}
	if filter.Difficulty != nil {
		placeholder := fmt.Sprintf("$%d", len(params)+1)
		builder.WriteString("\n\tAND difficulty = " + placeholder)
		params = append(params, *filter.Difficulty)
	}
	if filter.PriceMin != nil {
		placeholder := fmt.Sprintf("$%d", len(params)+1)
		builder.WriteString("\n\tAND price >= " + placeholder)
		params = append(params, *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		placeholder := fmt.Sprintf("$%d", len(params)+1)
		builder.WriteString("\n\tAND price <= " + placeholder)
		params = append(params, *filter.PriceMax)
	}
	if filter.RatingMin != nil {
		placeholder := fmt.Sprintf("$%d", len(params)+1)
		builder.WriteString("\n\tAND rating >= " + placeholder)
		params = append(params, *filter.RatingMin)
	}

	builder.WriteString("\n\tORDER BY " + buildTourOrderBy(filter.Sort))

	limitPlaceholder := fmt.Sprintf("$%d", len(params)+1)
	offsetPlaceholder := fmt.Sprintf("$%d", len(params)+2)
	builder.WriteString("\n\tLIMIT " + limitPlaceholder + " OFFSET " + offsetPlaceholder)
	params = append(params, filter.Limit, filter.Offset)

	rows := []tourRow{}
	if err := r.db.SelectContext(ctx, &rows, builder.String(), params...); err != nil {
		return nil, err
	}
	tours := make([]domain.Tour, 0, len(rows))
	for i := range rows {
		tours = append(tours, *rows[i].toDomain())
	}
	return tours, nil
}

func buildTourOrderBy(sorts []domain.TourSort) string {
	clauses := make([]string, 0, len(sorts)+1)
	for _, sort := range sorts {
		switch sort {
		case domain.TourSortOldest:
			clauses = append(clauses, "created_at ASC")
		case domain.TourSortPriceAsc:
			clauses = append(clauses, "price ASC")
		case domain.TourSortPriceDesc:
			clauses = append(clauses, "price DESC")
		case domain.TourSortRatingAsc:
			clauses = append(clauses, "rating ASC")
		case domain.TourSortRating:
			clauses = append(clauses, "rating DESC")
		case domain.TourSortNameAsc:
			clauses = append(clauses, "name ASC")
		case domain.TourSortNameDesc:
			clauses = append(clauses, "name DESC")
		case domain.TourSortNewest:
			clauses = append(clauses, "created_at DESC")
		}
	}
	if len(clauses) == 0 {
		clauses = append(clauses, "created_at DESC")
	}
	return strings.Join(clauses, ", ")
}

func (r *TourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tour WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
