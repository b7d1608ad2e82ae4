package robot

import (
	"context"
	"fmt"

	"range-trading-bot/internal/channel"
	"range-trading-bot/internal/logger"
	"range-trading-bot/internal/types"
)

// stopLossWidthFraction sizes the stop-loss distance as a fixed fraction of
// the channel width below the average entry price.
const stopLossWidthFraction = 0.3

// checkStopLoss exits the full position when the price falls through the
// stop-loss level. Runs before the range checks and ignores the position
// limit. Reports whether the stop fired.
func (r *Robot) checkStopLoss(ctx context.Context, ch channel.Channel, lastPrice float64, lots int64, avgPrice float64) (bool, error) {
	stopLossPrice := avgPrice - ch.Width()*stopLossWidthFraction
	logger.Debug(ctx, "Stop loss price", "figi", r.p.Figi, "stop_loss_price", stopLossPrice)
	if stopLossPrice <= lastPrice {
		return false, nil
	}

	logger.Warn(ctx, "Stop loss triggered",
		"figi", r.p.Figi,
		"last_price", lastPrice,
		"stop_loss_price", stopLossPrice,
		"avg_entry_price", avgPrice,
		"lots", lots,
	)
	r.notifier.Post(ctx, fmt.Sprintf("%s stop loss triggered. Last price = %v", r.p.Figi, lastPrice))

	if err := r.submit(ctx, types.DirectionSell, lots, lastPrice, triggerStopLoss, ""); err != nil {
		return false, err
	}
	return true, nil
}
