package market

// InstrumentMeta describes how an instrument is quoted.
type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int
}

// Instruments lists the instruments with known quoting conventions.
var Instruments = map[string]InstrumentMeta{
	"EUR_USD": {Name: "EUR_USD", BaseCurrency: "EUR", QuoteCurrency: "USD", PipLocation: -4},
	"GBP_USD": {Name: "GBP_USD", BaseCurrency: "GBP", QuoteCurrency: "USD", PipLocation: -4},
	"AUD_USD": {Name: "AUD_USD", BaseCurrency: "AUD", QuoteCurrency: "USD", PipLocation: -4},
	"USD_CHF": {Name: "USD_CHF", BaseCurrency: "USD", QuoteCurrency: "CHF", PipLocation: -4},
	"USD_JPY": {Name: "USD_JPY", BaseCurrency: "USD", QuoteCurrency: "JPY", PipLocation: -2},
	"EUR_JPY": {Name: "EUR_JPY", BaseCurrency: "EUR", QuoteCurrency: "JPY", PipLocation: -2},
	"BTC_USD": {Name: "BTC_USD", BaseCurrency: "BTC", QuoteCurrency: "USD", PipLocation: 0},
}

// DefaultPriceDecimals is used for instruments missing from Instruments.
const DefaultPriceDecimals = 5

// PriceDecimals is the number of decimals a price of instrument is quoted
// with: one more than the pip location, so EUR_USD gets 5 and USD_JPY 3.
func PriceDecimals(instrument string) int {
	meta, ok := Instruments[instrument]
	if !ok {
		return DefaultPriceDecimals
	}
	if d := -meta.PipLocation + 1; d > 0 {
		return d
	}
	return 0
}
