package db

import (
	"sync"

	"github.com/rs/zerolog"

	"supermarket-checkout/pkg/model"
	"supermarket-checkout/pkg/pricing"
)

type storedBasketAndScans struct {
	basket    model.BasketInfo
	scans     map[string]*model.Scan
	scanCount uint64
	items     string
	total     pricing.TotalPrice
}

type customerBaskets struct {
	baskets map[string]*storedBasketAndScans
}

type InMemoryBasketDatabase struct {
	// customerId -> Id -> basket and its scans
	baskets map[model.CustomerId]*customerBaskets
	mu      *sync.RWMutex
	logger  zerolog.Logger
}

var _ BasketDatabase = InMemoryBasketDatabase{}

func NewInMemoryBasketDatabase(logger zerolog.Logger) *InMemoryBasketDatabase {
	return &InMemoryBasketDatabase{
		baskets: make(map[model.CustomerId]*customerBaskets),
		mu:      &sync.RWMutex{},
		logger:  logger,
	}
}

func (m InMemoryBasketDatabase) CreateBasket(basket model.BasketInfo) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	customerId, basketId := basket.Id.CustomerId, basket.Id.Id
	if _, ok := m.baskets[customerId]; !ok {
		m.baskets[customerId] = &customerBaskets{
			baskets: make(map[string]*storedBasketAndScans),
		}
	} else if _, ok := m.baskets[customerId].baskets[basketId]; ok {
		return 0, ErrBasketAlreadyExists
	}

	m.baskets[customerId].baskets[basketId] = &storedBasketAndScans{
		basket: basket,
		scans:  make(map[string]*model.Scan),
		total:  pricing.TotalPrice{Total: 0, Ok: true},
	}
	m.logger.Debug().Str("basket_id", basketId).Msg("in memory saving basket")
	return 1, nil
}

func (m InMemoryBasketDatabase) RecordScan(scan model.Scan, totalAfter pricing.TotalPrice) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	customerId, basketId, scanId := scan.Id.BasketId.CustomerId, scan.Id.BasketId.Id, scan.Id.Id
	customerBaskets, ok := m.baskets[customerId]
	if !ok {
		return 0, ErrBasketNotFound
	}
	storedBasket, ok := customerBaskets.baskets[basketId]
	if !ok {
		return 0, ErrBasketNotFound
	}
	if storedBasket.basket.Status == model.Closed {
		return 0, ErrBasketClosed
	}
	if _, ok := storedBasket.scans[scanId]; ok {
		return 0, ErrScanAlreadyExists
	}

	storedBasket.scans[scanId] = &scan
	storedBasket.scanCount++
	storedBasket.items += scan.Items
	storedBasket.total = totalAfter
	m.logger.Debug().
		Str("basket_id", basketId).
		Str("scan_id", scanId).
		Str("items", scan.Items).
		Int64("total", totalAfter.Total).
		Msg("in memory saving scan")
	return 1, nil
}

func (m InMemoryBasketDatabase) CloseBasket(basketId model.BasketId) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	customerId, id := basketId.CustomerId, basketId.Id
	customerBaskets, ok := m.baskets[customerId]
	if !ok {
		return 0, ErrBasketNotFound
	}
	storedBasketAndScans, ok := customerBaskets.baskets[id]
	if !ok {
		return 0, ErrBasketNotFound
	}

	storedBasketAndScans.basket.Status = model.Closed
	customerBaskets.baskets[id] = storedBasketAndScans
	m.logger.Debug().Str("basket_id", id).Msg("in memory closing basket")
	return 1, nil
}

func (m InMemoryBasketDatabase) GetBasket(basketId model.BasketId) (BasketRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	customerId, id := basketId.CustomerId, basketId.Id
	customerBaskets, ok := m.baskets[customerId]
	if !ok {
		return BasketRecord{}, ErrBasketNotFound
	}
	storedBasketAndScans, ok := customerBaskets.baskets[id]
	if !ok {
		return BasketRecord{}, ErrBasketNotFound
	}

	return BasketRecord{
		BasketInfo: storedBasketAndScans.basket,
		ScanCount:  storedBasketAndScans.scanCount,
		Items:      storedBasketAndScans.items,
		Total:      storedBasketAndScans.total,
	}, nil
}
