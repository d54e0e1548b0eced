package db

import (
	"errors"

	"supermarket-checkout/pkg/model"
	"supermarket-checkout/pkg/pricing"
)

type BasketRecord struct {
	BasketInfo model.BasketInfo
	ScanCount  uint64
	Items      string
	Total      pricing.TotalPrice
}

type BasketDatabase interface {
	CreateBasket(basket model.BasketInfo) (uint64, error)
	RecordScan(scan model.Scan, totalAfter pricing.TotalPrice) (uint64, error)
	CloseBasket(basketId model.BasketId) (uint64, error)
	GetBasket(basketId model.BasketId) (BasketRecord, error)
}

// ErrBasketNotFound is returned when a basket is not found.
var ErrBasketNotFound = errors.New("basket not found")

// ErrBasketAlreadyExists is returned when a basket already exists.
var ErrBasketAlreadyExists = errors.New("basket already exists")

// ErrScanAlreadyExists is returned when a scan already exists.
var ErrScanAlreadyExists = errors.New("scan already exists")

// ErrBasketClosed is returned when a basket is closed.
var ErrBasketClosed = errors.New("basket is closed")
