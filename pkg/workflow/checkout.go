package workflow

import (
	"fmt"

	"time"

	"supermarket-checkout/pkg/activity"
	"supermarket-checkout/pkg/model"
	"supermarket-checkout/pkg/pricing"

	"go.temporal.io/sdk/log"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const ScanItemsUpdate = "ScanItems"
const GetPendingBasketStateQuery = "GetPendingBasketState"
const CloseBasketEarlySignal = "CloseBasketEarly"
const CheckoutQueueDefault = "checkout"

// Workflow code must be deterministic. The default rule set is immutable and
// pricing is a pure function of the scanned items, so it is safe to evaluate
// inline instead of passing rules through the (serialized) workflow input.
var market = pricing.NewDefaultSupermarket()

type NegativeDurationError struct {
	Duration time.Duration
}

func (e NegativeDurationError) Error() string {
	return fmt.Sprintf("duration is negative %q", e.Duration)
}

type CheckoutState struct {
	BasketInfo model.BasketInfo
	ScanCount  uint64
	Items      string
	Total      pricing.TotalPrice
}

type checkoutState struct {
	CheckoutState
	logger log.Logger
}

func (state *checkoutState) Clone() CheckoutState {
	return CheckoutState{
		BasketInfo: state.BasketInfo,
		ScanCount:  state.ScanCount,
		Items:      state.Items,
		Total:      state.Total,
	}
}

func defaultActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: activity.DefaultActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    10,
		},
	}
}

func (state *checkoutState) createBasketIfNotExistSyncActivity(ctx workflow.Context) (uint64, error) {
	state.logger.Info("Creating basket if it does not exist", "Basket", state.BasketInfo)
	ctxWithOptions := workflow.WithActivityOptions(ctx, defaultActivityOptions())
	var updateCount uint64
	e := workflow.ExecuteActivity(
		ctxWithOptions,
		activity.CreateBasketIfNotExistActivity,
		state.BasketInfo,
	).Get(ctxWithOptions, &updateCount)
	return updateCount, e
}

func (state *checkoutState) validateScan(ctx workflow.Context, scan model.Scan) error {
	state.logger.Info("Validating scan", "Basket", state.BasketInfo, "Scan", scan)
	return state.BasketInfo.CheckScanCompatible(scan)
}

func (state *checkoutState) recordScanSyncActivity(ctx workflow.Context, scan model.Scan) (intermediateState CheckoutState, e error) {
	state.logger.Info("Recording scan if it does not exist", "Basket", state.BasketInfo, "Scan", scan)
	// Reprice the whole session so bundle boundaries hold across scans.
	itemsAfter := state.Items + scan.Items
	totalAfter := market.CheckoutTotal(itemsAfter)
	ctxWithOptions := workflow.WithActivityOptions(ctx, defaultActivityOptions())
	var updateCount uint64
	e = workflow.ExecuteActivity(
		ctxWithOptions,
		activity.RecordScanIfNotExistActivity,
		scan,
		totalAfter,
	).Get(ctxWithOptions, &updateCount)
	if e == nil && 0 < updateCount {
		state.ScanCount += updateCount
		state.Items = itemsAfter
		state.Total = totalAfter
		state.logger.Info("Scan recorded", "Total", state.Total, "Items", state.Items)
	}
	return state.Clone(), e
}

func (state *checkoutState) closeBasketSyncActivity(ctx workflow.Context) (uint64, error) {
	state.logger.Info("Checkout workflow completed", "Basket", state.BasketInfo, "Final scan count", state.ScanCount)
	ctxWithOptions := workflow.WithActivityOptions(ctx, defaultActivityOptions())
	var updateCount uint64
	e := workflow.ExecuteActivity(ctxWithOptions, activity.CloseBasketActivity, state.BasketInfo.Id).Get(ctxWithOptions, &updateCount)
	return updateCount, e
}

func CheckoutWorkflow(ctx workflow.Context, basketInfo model.BasketInfo, duration time.Duration) (count CheckoutState, e error) {
	state := &checkoutState{
		CheckoutState: CheckoutState{
			BasketInfo: basketInfo,
			ScanCount:  0,
			Items:      "",
			Total:      pricing.TotalPrice{Total: 0, Ok: true},
		},
		logger: workflow.GetLogger(ctx),
	}
	state.logger.Info("Checkout workflow started", "Basket", basketInfo, "Duration", duration)

	if duration < 0 {
		return state.Clone(), NegativeDurationError{duration}
	}

	if _, e := state.createBasketIfNotExistSyncActivity(ctx); e != nil {
		return state.Clone(), e
	}

	e = workflow.SetUpdateHandlerWithOptions(
		ctx,
		ScanItemsUpdate,
		state.recordScanSyncActivity,
		workflow.UpdateHandlerOptions{
			Validator: state.validateScan,
		})
	if e != nil {
		return state.Clone(), e
	}
	e = workflow.SetQueryHandler(ctx, GetPendingBasketStateQuery, func() (CheckoutState, error) {
		return state.Clone(), nil
	})
	if e != nil {
		return state.Clone(), e
	}

	// Create a selector to either end with timer or close the basket ahead of time
	selector := workflow.NewSelector(ctx)
	selector.AddFuture(
		workflow.NewTimer(ctx, duration),
		func(future workflow.Future) {
			state.logger.Info("Basket arrived at maturity, closing")
		})
	selector.AddReceive(
		workflow.GetSignalChannel(ctx, CloseBasketEarlySignal),
		func(channel workflow.ReceiveChannel, more bool) {
			var receivedUpdate string
			channel.Receive(ctx, &receivedUpdate)
			state.logger.Info("Received signal to close basket early:", receivedUpdate)
		})
	selector.Select(ctx) // Wait until either the timer expires or the close signal is received

	_, e = state.closeBasketSyncActivity(ctx)
	if e == nil {
		state.BasketInfo.Status = model.Closed
	}
	return state.Clone(), e
}
