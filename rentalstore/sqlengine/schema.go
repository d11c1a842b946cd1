package sqlengine

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// RequiredTables are the tables a usable store must carry.
var RequiredTables = []string{tableUsers, tableAssets, tableRentals}

// VerifySchema checks that all RequiredTables exist.
// It returns ErrSchemaIncomplete naming the missing tables otherwise.
func (s Store) VerifySchema(ctx context.Context) error {
	var stmt *goqu.SelectDataset

	switch s.dialect {
	case DialectSQLite:
		stmt = s.builder().
			From("sqlite_master").
			Select(colName).
			Where(goqu.C("type").Eq("table"), goqu.C(colName).In(RequiredTables))

	default:
		stmt = s.builder().
			From(goqu.S("information_schema").Table("tables")).
			Select("table_name").
			Where(goqu.C("table_schema").Eq(goqu.L("current_schema()")), goqu.C("table_name").In(RequiredTables))
	}

	sqlQuery, err := s.toSQL(ctx, stmt)
	if err != nil {
		return err
	}

	rows, duration, err := s.executeQuery(ctx, operationVerifySchema, sqlQuery)
	if err != nil {
		return err
	}
	defer s.closeRows(ctx, rows)

	existing := make([]string, 0, len(RequiredTables))

	for rows.Next() {
		var table string
		if scanErr := rows.Scan(&table); scanErr != nil {
			return s.scanFailed(ctx, operationVerifySchema, scanErr)
		}

		existing = append(existing, table)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return s.scanFailed(ctx, operationVerifySchema, rowsErr)
	}

	s.logOperation(ctx, operationVerifySchema, duration, logAttrRowCount, len(existing))

	var missing []string
	for _, table := range RequiredTables {
		if !slices.Contains(existing, table) {
			missing = append(missing, table)
		}
	}

	if len(missing) > 0 {
		return errors.Join(rentalstore.ErrSchemaIncomplete, errors.New("missing tables: "+strings.Join(missing, ", ")))
	}

	return nil
}
