package model

import "fmt"

type CustomerId string

type BasketId struct {
	CustomerId CustomerId
	Id         string
}

type BasketStatus uint8

const (
	Open BasketStatus = iota
	Closed
)

type BasketInfo struct {
	Id     BasketId
	Status BasketStatus
}

type ScanId struct {
	BasketId BasketId
	Id       string
}

// Scan is a single register scan: one or more product codes read in one go,
// each item represented by a single character.
type Scan struct {
	Id    ScanId
	Items string
}

type EmptyScanError struct {
	Id ScanId
}

func (e EmptyScanError) Error() string {
	return fmt.Sprintf("scan %q carries no items", e.Id.Id)
}

type BasketMismatchError struct {
	ExpectedBasketId BasketId
	ReceivedBasketId BasketId
}

func (e BasketMismatchError) Error() string {
	return fmt.Sprintf("scan belongs to basket %q, expected %q", e.ReceivedBasketId.Id, e.ExpectedBasketId.Id)
}

type BasketClosedError struct {
	Id BasketId
}

func (e BasketClosedError) Error() string {
	return fmt.Sprintf("basket %q is closed", e.Id.Id)
}

// CheckScanCompatible rejects scans that cannot be added to this basket.
// Unrecognized product codes are not a reason for rejection, they price to
// zero downstream.
func (b *BasketInfo) CheckScanCompatible(scan Scan) error {
	if b.Status == Closed {
		return BasketClosedError{b.Id}
	}
	if scan.Id.BasketId != b.Id {
		return BasketMismatchError{ExpectedBasketId: b.Id, ReceivedBasketId: scan.Id.BasketId}
	}
	if len(scan.Items) == 0 {
		return EmptyScanError{scan.Id}
	}
	return nil
}
