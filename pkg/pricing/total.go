package pricing

import "github.com/JohnCGriffin/overflow"

// TotalPrice accumulates rule contributions with an overflow check. Once an
// addition overflows, Ok flips to false and stays false.
type TotalPrice struct {
	Total int64
	Ok    bool
}

func (total *TotalPrice) Add(amount int64) {
	if total.Ok {
		total.Total, total.Ok = overflow.Add64(total.Total, amount)
	}
}
