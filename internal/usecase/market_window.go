package usecase

import "GeoPulse/pkg/util"

// priceWindow keeps a short rolling series of daily reference prices for
// one symbol, enough to derive daily and weekly change percentages.
type priceWindow struct {
	maxDays int
	entries []dayPrice
}

type dayPrice struct {
	day   string // YYYY-MM-DD
	open  float64
	close float64
}

func newPriceWindow(maxDays int) *priceWindow {
	if maxDays <= 0 {
		maxDays = 7
	}
	return &priceWindow{maxDays: maxDays}
}

// Observe records a price for a day. The first observation of a day fixes
// its open; later ones update the close.
func (w *priceWindow) Observe(day string, price float64) {
	n := len(w.entries)
	if n > 0 && w.entries[n-1].day == day {
		w.entries[n-1].close = price
		return
	}
	w.entries = append(w.entries, dayPrice{day: day, open: price, close: price})
	if len(w.entries) > w.maxDays {
		w.entries = w.entries[len(w.entries)-w.maxDays:]
	}
}

// Last returns the most recent observed price.
func (w *priceWindow) Last() (float64, bool) {
	if len(w.entries) == 0 {
		return 0, false
	}
	return w.entries[len(w.entries)-1].close, true
}

// ChangePct returns the daily and weekly percentage changes of the latest
// price against the session open and the oldest tracked day.
func (w *priceWindow) ChangePct() (day, week float64) {
	n := len(w.entries)
	if n == 0 {
		return 0, 0
	}
	latest := w.entries[n-1]
	day = pctChange(latest.open, latest.close)
	week = pctChange(w.entries[0].open, latest.close)
	return day, week
}

func pctChange(ref, cur float64) float64 {
	const eps = 1e-9
	if ref == 0 {
		return 0
	}
	v := (cur - ref) / (ref + eps) * 100
	if !util.IsFinite(v) {
		return 0
	}
	return v
}
