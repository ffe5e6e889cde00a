package sqlite

import (
	"context"
	"database/sql"
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// TableInfo describes one table of the schema
type TableInfo struct {
	Name    string   `json:"name"`
	SQL     string   `json:"sql"`
	Columns []string `json:"columns"`
}

const tableColumnsQuery = "SELECT name FROM pragma_table_info(?) ORDER BY cid"

func tableColumns(ctx context.Context, q querier, table string) ([]string, error) {
	rows, err := q.QueryContext(ctx, tableColumnsQuery, table)
	if err != nil {
		return nil, wrap("read columns of", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, wrap("read columns of", table, err)
		}
		cols = append(cols, name)
	}
	return cols, wrap("read columns of", table, rows.Err())
}

// Columns lists the columns of table in declaration order; empty when the table does not exist
func (c *Client) Columns(ctx context.Context, table string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return tableColumns(ctx, c.db, table)
}

// Tables describes every user table ordered by name
func (c *Client) Tables(ctx context.Context) ([]TableInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.QueryContext(ctx,
		"SELECT name, sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, wrap("list", "tables", err)
	}

	var tables []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.Name, &t.SQL); err != nil {
			rows.Close()
			return nil, wrap("list", "tables", err)
		}
		tables = append(tables, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrap("list", "tables", err)
	}

	// rows must be closed before the next query on the single connection
	for i := range tables {
		cols, err := tableColumns(ctx, c.db, tables[i].Name)
		if err != nil {
			return nil, err
		}
		tables[i].Columns = cols
	}
	return tables, nil
}
