package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/quant/market"
)

// FormatTradeOrg renders a trade as an Org-mode heading. Structured facts go
// in the PROPERTIES drawer; Thesis/Execution/Review are left for notes.
func FormatTradeOrg(t market.Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Instrument, t.Side, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TRADE_ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":INSTRUMENT: %s\n", t.Instrument)
	fmt.Fprintf(&b, ":SIDE: %s\n", t.Side)
	fmt.Fprintf(&b, ":QUANTITY: %g\n", t.Quantity)
	dp := market.PriceDecimals(t.Instrument)
	fmt.Fprintf(&b, ":ENTRY_PRICE: %.*f\n", dp, t.EntryPrice)
	fmt.Fprintf(&b, ":EXIT_PRICE: %.*f\n", dp, t.ExitPrice)
	fmt.Fprintf(&b, ":ENTRY_TIME: %s\n", t.EntryTime.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":EXIT_TIME: %s\n", t.ExitTime.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":HELD: %s\n", t.Duration())
	fmt.Fprintf(&b, ":PL: %.2f\n", t.ProfitLoss())
	fmt.Fprintf(&b, ":PL_PCT: %.2f\n", t.ProfitLossPercent())
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []market.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
