package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/query"
)

// table describe una tabla para el renderizado de predicados y orden.
// columns es la lista blanca campo lógico -> columna; nada fuera de ella llega al SQL.
type table struct {
	name    string
	columns map[string]string
	// selectList columnas en el orden que espera el scan del repositorio.
	selectList string
}

func (t table) column(field string) (string, error) {
	col, ok := t.columns[field]
	if !ok {
		return "", fmt.Errorf("%s: campo %q no consultable: %w", t.name, field, domain.ErrInvalidInput)
	}
	return col, nil
}

// where renderiza las condiciones como cláusula WHERE con parámetros posicionales
// a partir de len(args)+1. Devuelve "" si no hay condiciones.
func (t table) where(conds []query.Condition, args []any) (string, []any, error) {
	if len(conds) == 0 {
		return "", args, nil
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		switch c.Op {
		case query.OpContains:
			args = append(args, "%"+escapeLike(fmt.Sprint(c.Value))+"%")
			ph := "$" + strconv.Itoa(len(args))
			ors := make([]string, 0, len(c.Fields))
			for _, f := range c.Fields {
				col, err := t.column(f)
				if err != nil {
					return "", nil, err
				}
				ors = append(ors, col+" ILIKE "+ph+` ESCAPE '\'`)
			}
			parts = append(parts, "("+strings.Join(ors, " OR ")+")")
		case query.OpEquals:
			col, err := t.column(c.Fields[0])
			if err != nil {
				return "", nil, err
			}
			args = append(args, c.Value)
			parts = append(parts, col+" = $"+strconv.Itoa(len(args)))
		default:
			return "", nil, fmt.Errorf("%s: operador %d no soportado: %w", t.name, c.Op, domain.ErrInvalidInput)
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

// orderBy renderiza ORDER BY con desempate por id para que la paginación sea estable.
func (t table) orderBy(s query.SortSpec) (string, error) {
	col, err := t.column(s.Field)
	if err != nil {
		return "", err
	}
	dir := "ASC"
	if s.IsDesc() {
		dir = "DESC"
	}
	clause := " ORDER BY " + col + " " + dir
	if idCol := t.columns["id"]; col != idCol {
		clause += ", " + idCol + " ASC"
	}
	return clause, nil
}

// selectPage arma el SELECT paginado de q.
func (t table) selectPage(where []query.Condition, order query.SortSpec, limit, offset int) (string, []any, error) {
	w, args, err := t.where(where, nil)
	if err != nil {
		return "", nil, err
	}
	o, err := t.orderBy(order)
	if err != nil {
		return "", nil, err
	}
	args = append(args, limit, offset)
	sql := "SELECT " + t.selectList + " FROM " + t.name + w + o +
		" LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))
	return sql, args, nil
}

// selectCount arma el SELECT COUNT(*) con el mismo WHERE que selectPage.
func (t table) selectCount(where []query.Condition) (string, []any, error) {
	w, args, err := t.where(where, nil)
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM " + t.name + w, args, nil
}

// escapeLike escapa los comodines de LIKE para que el término se busque literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// findPage ejecuta el SELECT paginado y escanea cada fila con scan.
func findPage[T query.Record](ctx context.Context, q Querier, t table, qry query.Query[T], limit, offset int, scan pgx.RowToFunc[T]) ([]T, error) {
	sql, args, err := t.selectPage(qry.Where.Conditions(), qry.Order, limit, offset)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.name, err)
	}
	return items, nil
}

// countWhere cuenta las filas que cumplen where.
func countWhere[T query.Record](ctx context.Context, q Querier, t table, where query.Predicate[T]) (int64, error) {
	sql, args, err := t.selectCount(where.Conditions())
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}

// existsByName consulta el índice único de name, excluyendo excludeID si es > 0.
func existsByName(ctx context.Context, q Querier, t table, name string, excludeID int64) (bool, error) {
	var exists bool
	sql := "SELECT EXISTS(SELECT 1 FROM " + t.name + " WHERE name = $1 AND id <> $2)"
	if err := q.QueryRow(ctx, sql, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s: %w", t.name, err)
	}
	return exists, nil
}

// deleteByID borra por id; ErrNotFound si no afectó filas.
func deleteByID(ctx context.Context, q Querier, t table, id int64) error {
	cmd, err := q.Exec(ctx, "DELETE FROM "+t.name+" WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete %s %d: %w", t.name, id, domain.ErrConflict)
		}
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// writeErr traduce errores de escritura a sentinelas de dominio.
func writeErr(op string, t table, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s %s: %w", op, t.name, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s %s: %w", op, t.name, domain.ErrConflict)
	default:
		return fmt.Errorf("%s %s: %w", op, t.name, err)
	}
}
