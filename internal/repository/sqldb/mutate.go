package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"geocatalog/internal/domain"
	"geocatalog/internal/metadata"
)

// ErrCommit wraps any database failure during a mutation so callers can
// distinguish storage failures from validation errors.
var ErrCommit = errors.New("cannot commit to repository")

func commitErr(err error) error {
	return fmt.Errorf("%w: %w", ErrCommit, err)
}

func insertTimestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// prepareRecord fills the storage defaults a caller may omit: a generated
// identifier, the insert timestamp, the default typename/schema/source,
// and the searchable text derived from the XML document.
func prepareRecord(rec *domain.Record) error {
	if rec.Identifier == "" {
		rec.Identifier = uuid.NewString()
	}
	if rec.Typename == "" {
		rec.Typename = "csw:Record"
	}
	if rec.Schema == "" {
		rec.Schema = "http://www.opengis.net/cat/csw/2.0.2"
	}
	if rec.MDSource == "" {
		rec.MDSource = "local"
	}
	if rec.InsertDate == "" {
		rec.InsertDate = insertTimestamp()
	}
	if rec.MetadataType == "" {
		rec.MetadataType = "application/xml"
	}
	if rec.AnyText == "" && rec.XML != "" {
		text, err := metadata.AnyText(rec.XML)
		if err != nil {
			return fmt.Errorf("derive searchable text: %w", err)
		}
		rec.AnyText = text
	}
	return nil
}

// Insert stores one record, filling defaults first.
func (r *Repository) Insert(ctx context.Context, rec *domain.Record) error {
	if err := prepareRecord(rec); err != nil {
		return err
	}

	stmt := "INSERT INTO " + r.table + " (" + recordColumns + ") VALUES (" +
		placeholders(len(recordColumnDefs)) + ")"
	if _, err := r.db.ExecContext(ctx, r.rebind(stmt), recordValues(rec)...); err != nil {
		return commitErr(err)
	}
	return nil
}

// Update replaces every column of the record with rec.Identifier.
func (r *Repository) Update(ctx context.Context, rec *domain.Record) error {
	if rec.Identifier == "" {
		return fmt.Errorf("update record: missing identifier")
	}
	if err := prepareRecord(rec); err != nil {
		return err
	}

	sets := make([]string, 0, len(recordColumnDefs)-1)
	for _, def := range recordColumnDefs[1:] {
		sets = append(sets, def.name+" = ?")
	}
	where, whereArgs := r.whereClause(&domain.Constraint{
		Where:  r.idCol + " = ?",
		Values: []any{rec.Identifier},
	})

	args := append(recordValues(rec)[1:], whereArgs...)
	stmt := "UPDATE " + r.table + " SET " + strings.Join(sets, ", ") + where
	if _, err := r.db.ExecContext(ctx, r.rebind(stmt), args...); err != nil {
		return commitErr(err)
	}
	return nil
}

// UpdateProperties applies targeted value changes to every record
// matching the constraint. Each change needs a queryable that carries
// both a column and an XPath: the column gets the new value, the XML
// document is rewritten at the XPath, and the searchable text is
// re-derived from the updated document. All of it happens in one
// transaction; the returned count sums the rows touched per change.
func (r *Repository) UpdateProperties(ctx context.Context, constraint domain.Constraint, updates []domain.PropertyUpdate) (int, error) {
	type binding struct {
		update domain.PropertyUpdate
		q      domain.Queryable
	}
	bindings := make([]binding, 0, len(updates))
	for _, u := range updates {
		q, err := r.queryables.Resolve(u.Name)
		if err != nil {
			return 0, err
		}
		if q.DBCol == "" {
			return 0, fmt.Errorf("no column mapped for property %s", u.Name)
		}
		if q.XPath == "" {
			return 0, fmt.Errorf("no xpath mapped for property %s", u.Name)
		}
		bindings = append(bindings, binding{update: u, q: q})
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, commitErr(err)
	}
	defer tx.Rollback()

	type target struct {
		id  string
		xml string
	}
	where, args := r.whereClause(&constraint)
	rows, err := tx.QueryContext(ctx,
		r.rebind("SELECT "+r.idCol+", "+r.xmlCol+" FROM "+r.table+where), args...)
	if err != nil {
		return 0, commitErr(err)
	}
	var targets []target
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.id, &t.xml); err != nil {
			rows.Close()
			return 0, commitErr(err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, commitErr(err)
	}
	rows.Close()

	total := 0
	for _, b := range bindings {
		for i := range targets {
			updated, err := metadata.UpdateXPath(targets[i].xml, r.namespaces, b.q.XPath, b.update.Value)
			if err != nil {
				return 0, fmt.Errorf("rewrite %s for %s: %w", b.update.Name, targets[i].id, err)
			}
			anytext, err := metadata.AnyText(updated)
			if err != nil {
				return 0, fmt.Errorf("derive searchable text for %s: %w", targets[i].id, err)
			}
			targets[i].xml = updated

			stmt := "UPDATE " + r.table + " SET " + b.q.DBCol + " = ?, " +
				r.xmlCol + " = ?, " + r.anytextCol + " = ? WHERE " + r.idCol + " = ?"
			res, err := tx.ExecContext(ctx, r.rebind(stmt),
				b.update.Value, updated, anytext, targets[i].id)
			if err != nil {
				return 0, commitErr(err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return 0, commitErr(err)
			}
			total += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, commitErr(err)
	}
	return total, nil
}

// Delete removes every record matching the constraint, then removes the
// children of the deleted records (records whose parent identifier is one
// of the deleted identifiers) in the same transaction. Returns the total
// count, parents plus children.
func (r *Repository) Delete(ctx context.Context, constraint domain.Constraint) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, commitErr(err)
	}
	defer tx.Rollback()

	// capture the doomed identifiers before deleting so the cascade
	// knows which parents disappeared
	where, args := r.whereClause(&constraint)
	rows, err := tx.QueryContext(ctx,
		r.rebind("SELECT "+r.idCol+" FROM "+r.table+where), args...)
	if err != nil {
		return 0, commitErr(err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, commitErr(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, commitErr(err)
	}
	rows.Close()

	res, err := tx.ExecContext(ctx, r.rebind("DELETE FROM "+r.table+where), args...)
	if err != nil {
		return 0, commitErr(err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, commitErr(err)
	}
	total := int(deleted)

	if len(ids) > 0 {
		values := make([]any, len(ids))
		for i, id := range ids {
			values[i] = id
		}
		childWhere, childArgs := r.whereClause(&domain.Constraint{
			Where:  r.parentCol + " IN (" + placeholders(len(ids)) + ")",
			Values: values,
		})
		res, err := tx.ExecContext(ctx,
			r.rebind("DELETE FROM "+r.table+childWhere), childArgs...)
		if err != nil {
			return 0, commitErr(err)
		}
		children, err := res.RowsAffected()
		if err != nil {
			return 0, commitErr(err)
		}
		total += int(children)
	}

	if err := tx.Commit(); err != nil {
		return 0, commitErr(err)
	}
	return total, nil
}
