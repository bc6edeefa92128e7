package partner

import (
	"fmt"
	"math"

	"foodgo/internal/pkg/errs"
)

// Rating is a partner's rolling average over all received ratings. Only the
// running mean and the count are kept; individual ratings live on their
// orders.
type Rating struct {
	Average float64
	Count   int
}

// Validate enforces a sane average and a non-negative count.
func (r Rating) Validate() error {
	if r.Average < 0 || r.Average > 5 {
		return errs.NewValueIsOutOfRangeError("rating average", r.Average, 0, 5)
	}
	if r.Count < 0 {
		return errs.NewValueIsInvalidErrorWithCause("rating count",
			fmt.Errorf("%d is negative", r.Count))
	}
	return nil
}

// Apply folds one new rating into the rolling average:
//
//	newAverage = round((average*count + rating) / (count+1)) to 1 decimal
//	newCount   = count + 1
func (r Rating) Apply(rating int) Rating {
	count := r.Count + 1
	average := (r.Average*float64(r.Count) + float64(rating)) / float64(count)
	return Rating{
		Average: math.Round(average*10) / 10,
		Count:   count,
	}
}

// Earnings tracks a partner's money. Every credited amount lands in both
// Total (lifetime, never decremented) and Pending (the withdrawable balance).
type Earnings struct {
	Total   float64
	Pending float64
}

// Validate enforces non-negative balances with Pending never exceeding Total.
func (e Earnings) Validate() error {
	if e.Total < 0 || e.Pending < 0 || e.Pending > e.Total {
		return errs.NewValueIsInvalidErrorWithCause("earnings",
			fmt.Errorf("total %.2f / pending %.2f is inconsistent", e.Total, e.Pending))
	}
	return nil
}

// Add credits an amount to both balances.
func (e Earnings) Add(amount float64) (Earnings, error) {
	if amount <= 0 {
		return e, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not greater than 0", amount))
	}
	return Earnings{Total: e.Total + amount, Pending: e.Pending + amount}, nil
}

// Withdraw debits an amount from the pending balance only. The lifetime total
// is untouched.
func (e Earnings) Withdraw(amount float64) (Earnings, error) {
	if amount <= 0 {
		return e, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not greater than 0", amount))
	}
	if amount > e.Pending {
		return e, errs.NewInsufficientFundsError(amount, e.Pending)
	}
	return Earnings{Total: e.Total, Pending: e.Pending - amount}, nil
}
