package pricing

import "fmt"

// PricingRule attaches a price to some subset of the counted items. A rule
// only reads the count mapping and is evaluated independently of the other
// rules, so evaluation order never changes the total.
type PricingRule interface {
	Price(counts map[rune]int64) int64
}

type InvalidBundleSizeError struct {
	BundleSize int64
}

func (e InvalidBundleSizeError) Error() string {
	return fmt.Sprintf("invalid bundle size %d, must be at least 1", e.BundleSize)
}

// FlatPrice charges a constant cost per unit of a product. A negative cost
// acts as a per-unit discount.
type FlatPrice struct {
	Product rune
	Cost    int64
}

var _ PricingRule = FlatPrice{}

func NewFlatPrice(product rune, cost int64) FlatPrice {
	return FlatPrice{Product: product, Cost: cost}
}

func (p FlatPrice) Price(counts map[rune]int64) int64 {
	return counts[p.Product] * p.Cost
}

// BundlePrice charges a package cost per full bundle of a product, with any
// remainder below a bundle charged at the lone cost. There is no cap on the
// number of bundles; a partial bundle is never charged at the bundle rate.
type BundlePrice struct {
	Product    rune
	LoneCost   int64
	BundleSize int64
	BundleCost int64
}

var _ PricingRule = BundlePrice{}

func NewBundlePrice(product rune, loneCost int64, bundleSize int64, bundleCost int64) (BundlePrice, error) {
	if bundleSize < 1 {
		return BundlePrice{}, InvalidBundleSizeError{bundleSize}
	}
	return BundlePrice{
		Product:    product,
		LoneCost:   loneCost,
		BundleSize: bundleSize,
		BundleCost: bundleCost,
	}, nil
}

func (p BundlePrice) Price(counts map[rune]int64) int64 {
	count := counts[p.Product]
	bundles := count / p.BundleSize
	leftovers := count % p.BundleSize
	return bundles*p.BundleCost + leftovers*p.LoneCost
}
