package pricing

// Market prices a full basket, where each item purchased is represented by a
// single character of the input.
type Market interface {
	Checkout(items string) int64
}

// Supermarket evaluates an ordered collection of pricing rules against the
// item counts of a basket. The rule collection is read-only after
// construction, so one instance may serve concurrent checkouts.
type Supermarket struct {
	priceRules []PricingRule
}

var _ Market = &Supermarket{}

// NewSupermarket builds a market over any rule set. Several rules may target
// the same product; their contributions add up.
func NewSupermarket(priceRules ...PricingRule) *Supermarket {
	rules := make([]PricingRule, len(priceRules))
	copy(rules, priceRules)
	return &Supermarket{priceRules: rules}
}

// NewDefaultSupermarket builds the standard rule set: 'A' at 20 apiece,
// 'B' at 50 apiece or 5 for 150, and 'C' at 30 apiece.
func NewDefaultSupermarket() *Supermarket {
	bundleOfB, err := NewBundlePrice('B', 50, 5, 150)
	if err != nil {
		panic(err) // the default rule set is static
	}
	return NewSupermarket(
		NewFlatPrice('A', 20),
		bundleOfB,
		NewFlatPrice('C', 30),
	)
}

// Checkout returns the exact sum of every rule's contribution for the given
// items, in whole currency units.
func (s *Supermarket) Checkout(items string) int64 {
	counts := CountItems(items)
	var total int64
	for _, rule := range s.priceRules {
		total += rule.Price(counts)
	}
	return total
}

// CheckoutTotal prices items through an overflow-checked accumulator, for
// callers that want to report rather than wrap on overflow.
func (s *Supermarket) CheckoutTotal(items string) TotalPrice {
	counts := CountItems(items)
	total := TotalPrice{Total: 0, Ok: true}
	for _, rule := range s.priceRules {
		total.Add(rule.Price(counts))
	}
	return total
}
