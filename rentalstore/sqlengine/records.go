package sqlengine

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

// GetAsset reads a single asset by id. A missing asset is reported as found == false.
func (s Store) GetAsset(ctx context.Context, assetID string) (rentalstore.Asset, bool, error) {
	stmt := s.builder().
		From(tableAssets).
		Select(colID, colAssetType).
		Where(goqu.C(colID).Eq(assetID)).
		Limit(1)

	sqlQuery, err := s.toSQL(ctx, stmt)
	if err != nil {
		return rentalstore.Asset{}, false, err
	}

	rows, duration, err := s.executeQuery(ctx, operationGetAsset, sqlQuery)
	if err != nil {
		return rentalstore.Asset{}, false, err
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		if rowsErr := rows.Err(); rowsErr != nil {
			return rentalstore.Asset{}, false, s.scanFailed(ctx, operationGetAsset, rowsErr)
		}

		s.logOperation(ctx, operationGetAsset, duration, logAttrRowCount, 0)

		return rentalstore.Asset{}, false, nil
	}

	var id, assetType sql.NullString
	if scanErr := rows.Scan(&id, &assetType); scanErr != nil {
		return rentalstore.Asset{}, false, s.scanFailed(ctx, operationGetAsset, scanErr)
	}

	s.logOperation(ctx, operationGetAsset, duration, logAttrRowCount, 1)

	return rentalstore.Asset{ID: id.String, AssetType: assetType.String}, true, nil
}

// AddAsset inserts an asset.
func (s Store) AddAsset(ctx context.Context, asset rentalstore.Asset) error {
	stmt := s.builder().
		Insert(tableAssets).
		Rows(goqu.Record{colID: asset.ID, colAssetType: asset.AssetType})

	return s.insert(ctx, tableAssets, stmt)
}

// AddUser inserts a user.
func (s Store) AddUser(ctx context.Context, user rentalstore.User) error {
	stmt := s.builder().
		Insert(tableUsers).
		Rows(goqu.Record{colID: user.ID, colName: user.Name})

	return s.insert(ctx, tableUsers, stmt)
}

// Reset deletes all rentals, assets and users.
func (s Store) Reset(ctx context.Context) error {
	for _, table := range []string{tableRentals, tableAssets, tableUsers} {
		sqlQuery, err := s.toSQL(ctx, s.builder().Delete(table))
		if err != nil {
			return err
		}

		rowsAffected, duration, err := s.executeStatement(ctx, operationReset, sqlQuery)
		if err != nil {
			return err
		}

		s.logOperation(ctx, operationReset, duration, logAttrTable, table, logAttrRowCount, rowsAffected)
	}

	return nil
}

func (s Store) insert(ctx context.Context, table string, stmt *goqu.InsertDataset) error {
	sqlQuery, err := s.toSQL(ctx, stmt)
	if err != nil {
		return err
	}

	_, duration, err := s.executeStatement(ctx, operationInsert, sqlQuery)
	if err != nil {
		return err
	}

	s.logOperation(ctx, operationInsert, duration, logAttrTable, table)

	return nil
}
