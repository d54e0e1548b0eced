package activity

import (
	"supermarket-checkout/pkg/model"
	"supermarket-checkout/pkg/pricing"
)

func CreateBasketIfNotExistActivity(basket model.BasketInfo) (uint64, error) {
	return database.CreateBasket(basket)
}

func RecordScanIfNotExistActivity(scan model.Scan, totalAfter pricing.TotalPrice) (uint64, error) {
	return database.RecordScan(scan, totalAfter)
}

func CloseBasketActivity(basketId model.BasketId) (uint64, error) {
	return database.CloseBasket(basketId)
}
