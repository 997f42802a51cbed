package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"geocatalog/internal/domain"
)

const defaultQueryLimit = 10

// Query runs the full read pipeline: mask filter, caller constraint,
// total count before paging, optional ranking, optional sorting, then
// LIMIT/OFFSET. The returned count is the number of matches before
// paging.
func (r *Repository) Query(ctx context.Context, constraint *domain.Constraint, sortBy *domain.Sort, rank *domain.Rank, limit, offset int) (int, []domain.Record, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if offset < 0 {
		offset = 0
	}

	where, args := r.whereClause(constraint)

	var total int
	countSQL := "SELECT COUNT(*) FROM " + r.table + where
	if err := r.db.QueryRowContext(ctx, r.rebind(countSQL), args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count records: %w", err)
	}

	query := "SELECT " + recordColumns + " FROM " + r.table + where

	// ranking comes before any caller sort so relevance wins ties only
	var orders []string
	queryArgs := append([]any{}, args...)
	if rank != nil {
		orders = append(orders,
			"CAST(get_spatial_overlay_rank(COALESCE("+r.geomCol+", ''), ?) AS REAL) DESC")
		queryArgs = append(queryArgs, rank.QueryGeometry)
	}
	if sortBy != nil {
		q, err := r.queryables.Resolve(sortBy.PropertyName)
		if err != nil {
			return 0, nil, err
		}
		dir := ""
		if sortBy.Order == domain.SortDescending {
			dir = " DESC"
		}
		if sortBy.Spatial {
			orders = append(orders,
				"CAST(get_geometry_area(COALESCE("+q.DBCol+", '')) AS REAL)"+dir)
		} else {
			orders = append(orders, q.DBCol+dir)
		}
	}
	if len(orders) > 0 {
		query += " ORDER BY " + strings.Join(orders, ", ")
	}

	query += " LIMIT ? OFFSET ?"
	queryArgs = append(queryArgs, limit, offset)

	rows, err := r.db.QueryContext(ctx, r.rebind(query), queryArgs...)
	if err != nil {
		return 0, nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return 0, nil, fmt.Errorf("scan records: %w", err)
	}
	return total, records, nil
}

// QueryIDs fetches records by identifier, still subject to the mask
// filter. Unknown identifiers are simply absent from the result.
func (r *Repository) QueryIDs(ctx context.Context, ids []string) ([]domain.Record, error) {
	if len(ids) == 0 {
		return []domain.Record{}, nil
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	where, args := r.whereClause(&domain.Constraint{
		Where:  r.idCol + " IN (" + placeholders(len(ids)) + ")",
		Values: values,
	})

	rows, err := r.db.QueryContext(ctx,
		r.rebind("SELECT "+recordColumns+" FROM "+r.table+where), args...)
	if err != nil {
		return nil, fmt.Errorf("query records by id: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return records, nil
}

// QueryCollections returns the collection records visible through the
// mask: every record referenced as a parent, plus every record whose
// typename marks it as a collection. Duplicates are removed and the
// result is capped at limit.
func (r *Repository) QueryCollections(ctx context.Context, filter *domain.Constraint, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	where, args := r.whereClause(nil)
	rows, err := r.db.QueryContext(ctx,
		r.rebind("SELECT DISTINCT "+r.parentCol+" FROM "+r.table+where), args...)
	if err != nil {
		return nil, fmt.Errorf("query parent identifiers: %w", err)
	}
	var parentIDs []string
	for rows.Next() {
		var id sql.NullString
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan parent identifier: %w", err)
		}
		if id.Valid && id.String != "" {
			parentIDs = append(parentIDs, id.String)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("scan parent identifiers: %w", err)
	}
	rows.Close()

	collections := []domain.Record{}
	seen := map[string]bool{}
	add := func(records []domain.Record) {
		for _, rec := range records {
			if len(collections) >= limit {
				return
			}
			if seen[rec.Identifier] {
				continue
			}
			seen[rec.Identifier] = true
			collections = append(collections, rec)
		}
	}

	if len(parentIDs) > 0 {
		values := make([]any, len(parentIDs))
		for i, id := range parentIDs {
			values[i] = id
		}
		parents, err := r.selectWhere(ctx, filter, &domain.Constraint{
			Where:  r.idCol + " IN (" + placeholders(len(parentIDs)) + ")",
			Values: values,
		})
		if err != nil {
			return nil, err
		}
		add(parents)
	}

	values := make([]any, len(domain.CollectionTypenames))
	for i, tn := range domain.CollectionTypenames {
		values[i] = tn
	}
	typed, err := r.selectWhere(ctx, filter, &domain.Constraint{
		Where:  r.typeCol + " IN (" + placeholders(len(values)) + ")",
		Values: values,
	})
	if err != nil {
		return nil, err
	}
	add(typed)

	return collections, nil
}

func (r *Repository) selectWhere(ctx context.Context, constraints ...*domain.Constraint) ([]domain.Record, error) {
	where, args := r.whereClause(constraints...)
	rows, err := r.db.QueryContext(ctx,
		r.rebind("SELECT "+recordColumns+" FROM "+r.table+where), args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return records, nil
}

// QueryDomain summarizes the values of one property across the masked
// table, either as a min/max range or as the list of distinct values,
// optionally with per-value frequencies.
func (r *Repository) QueryDomain(ctx context.Context, property string, queryType domain.DomainQueryType, count bool) (*domain.DomainResult, error) {
	q, err := r.queryables.Resolve(property)
	if err != nil {
		return nil, err
	}
	where, args := r.whereClause(nil)

	if queryType == domain.DomainRange {
		var minVal, maxVal sql.NullString
		stmt := "SELECT MIN(" + q.DBCol + "), MAX(" + q.DBCol + ") FROM " + r.table + where
		if err := r.db.QueryRowContext(ctx, r.rebind(stmt), args...).Scan(&minVal, &maxVal); err != nil {
			return nil, fmt.Errorf("query domain range for %s: %w", property, err)
		}
		return &domain.DomainResult{
			Min: nullToString(minVal),
			Max: nullToString(maxVal),
		}, nil
	}

	stmt := "SELECT DISTINCT " + q.DBCol + " FROM " + r.table + where
	if count {
		stmt = "SELECT " + q.DBCol + ", COUNT(" + q.DBCol + ") FROM " + r.table + where +
			" GROUP BY " + q.DBCol
	}

	rows, err := r.db.QueryContext(ctx, r.rebind(stmt), args...)
	if err != nil {
		return nil, fmt.Errorf("query domain values for %s: %w", property, err)
	}
	defer rows.Close()

	result := &domain.DomainResult{Values: []domain.DomainValue{}}
	for rows.Next() {
		var value sql.NullString
		var dv domain.DomainValue
		if count {
			if err := rows.Scan(&value, &dv.Frequency); err != nil {
				return nil, fmt.Errorf("scan domain value: %w", err)
			}
		} else {
			if err := rows.Scan(&value); err != nil {
				return nil, fmt.Errorf("scan domain value: %w", err)
			}
		}
		if !value.Valid {
			continue
		}
		dv.Value = value.String
		result.Values = append(result.Values, dv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan domain values: %w", err)
	}
	return result, nil
}

// QueryInsertDate returns the newest or oldest insert date in the masked
// table, or "" when the table is empty.
func (r *Repository) QueryInsertDate(ctx context.Context, direction domain.SortOrder) (string, error) {
	agg := "MAX"
	if direction == domain.SortAscending {
		agg = "MIN"
	}
	where, args := r.whereClause(nil)
	stmt := "SELECT " + agg + "(" + r.insertCol + ") FROM " + r.table + where

	var date sql.NullString
	if err := r.db.QueryRowContext(ctx, r.rebind(stmt), args...).Scan(&date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("query insert date: %w", err)
	}
	return nullToString(date), nil
}

// QuerySource returns every masked record harvested from source.
func (r *Repository) QuerySource(ctx context.Context, source string) ([]domain.Record, error) {
	return r.selectWhere(ctx, &domain.Constraint{
		Where:  r.sourceCol + " = ?",
		Values: []any{source},
	})
}
