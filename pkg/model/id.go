package model

import "github.com/google/uuid"

type BasketIdGenerator interface {
	New() string
}

type UuidBasketIdGenerator struct{}

var _ BasketIdGenerator = &UuidBasketIdGenerator{}

func (*UuidBasketIdGenerator) New() string {
	return uuid.New().String()
}
