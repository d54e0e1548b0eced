package db

import (
	"database/sql"

	"github.com/rs/zerolog"

	"supermarket-checkout/pkg/model"
	"supermarket-checkout/pkg/pricing"
)

type SqlBasketDatabase struct {
	sql    *sql.DB
	logger zerolog.Logger
}

var _ BasketDatabase = SqlBasketDatabase{}

func NewSqlBasketDatabase(sql *sql.DB, logger zerolog.Logger) *SqlBasketDatabase {
	return &SqlBasketDatabase{
		sql:    sql,
		logger: logger,
	}
}

func (m SqlBasketDatabase) CreateBasket(basket model.BasketInfo) (uint64, error) {
	res, err := m.sql.Exec(`
		INSERT INTO Basket (CustomerId, Id, Status, ScanCount, Items, Total, TotalOk)
		VALUES ($1, $2, $3, 0, '', 0, TRUE)
		ON CONFLICT (CustomerId, Id) DO NOTHING;
	`, string(basket.Id.CustomerId),
		basket.Id.Id,
		basket.Status)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	m.logger.Debug().Str("basket_id", basket.Id.Id).Int64("rows", rowsAffected).Msg("sql saving basket")
	return uint64(rowsAffected), nil
}

func (m SqlBasketDatabase) RecordScan(scan model.Scan, totalAfter pricing.TotalPrice) (uint64, error) {
	tx, err := m.sql.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	rows, err := tx.Query(`
		SELECT Status
		FROM Basket
		WHERE CustomerId = $1 AND Id = $2;
	`, string(scan.Id.BasketId.CustomerId), scan.Id.BasketId.Id)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		return 0, ErrBasketNotFound
	}
	var status model.BasketStatus
	err = rows.Scan(&status)
	if err != nil {
		return 0, err
	}
	if status != model.Open {
		return 0, ErrBasketClosed
	}
	rows.Close()
	res, err := tx.Exec(`
		UPDATE Basket
		SET
			ScanCount = ScanCount + 1,
			Items = Items || $3,
			Total = $4,
			TotalOk = $5
		WHERE CustomerId = $1 AND Id = $2;
	`, string(scan.Id.BasketId.CustomerId),
		scan.Id.BasketId.Id,
		scan.Items,
		totalAfter.Total,
		totalAfter.Ok)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, ErrBasketNotFound
	}
	res, err = tx.Exec(`
		INSERT INTO Scan (CustomerId, BasketId, Id, Items)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (CustomerId, BasketId, Id) DO NOTHING;
	`, string(scan.Id.BasketId.CustomerId),
		scan.Id.BasketId.Id,
		scan.Id.Id,
		scan.Items)
	if err != nil {
		return 0, err
	}
	rowsAffected, err = res.RowsAffected()
	if err != nil {
		return 0, err
	}
	m.logger.Debug().Str("scan_id", scan.Id.Id).Int64("rows", rowsAffected).Msg("sql saving scan")
	if rowsAffected == 0 {
		return 0, nil
	}
	return uint64(rowsAffected), tx.Commit()
}

func (m SqlBasketDatabase) CloseBasket(basketId model.BasketId) (uint64, error) {
	res, err := m.sql.Exec(`
		UPDATE Basket
		SET Status = $3
		WHERE CustomerId = $1 AND Id = $2;
	`, string(basketId.CustomerId), basketId.Id, model.Closed)
	m.logger.Debug().Str("basket_id", basketId.Id).Msg("sql closing basket")
	if err != nil {
		return 0, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, ErrBasketNotFound
	}
	return uint64(rowsAffected), nil
}

func (m SqlBasketDatabase) GetBasket(basketId model.BasketId) (BasketRecord, error) {
	rows, err := m.sql.Query(`
		SELECT CustomerId, Id, Status, ScanCount, Items, Total, TotalOk
		FROM Basket
		WHERE CustomerId = $1 AND Id = $2;
	`, string(basketId.CustomerId), basketId.Id)
	if err != nil {
		return BasketRecord{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		return BasketRecord{}, ErrBasketNotFound
	}
	var (
		customerId string
		id         string
		status     model.BasketStatus
		scanCount  uint64
		items      string
		total      int64
		totalOk    bool
	)
	err = rows.Scan(&customerId, &id, &status, &scanCount, &items, &total, &totalOk)
	if err != nil {
		return BasketRecord{}, err
	}
	return BasketRecord{
		BasketInfo: model.BasketInfo{
			Id: model.BasketId{
				CustomerId: model.CustomerId(customerId),
				Id:         id,
			},
			Status: status,
		},
		ScanCount: scanCount,
		Items:     items,
		Total:     pricing.TotalPrice{Total: total, Ok: totalOk},
	}, nil
}
