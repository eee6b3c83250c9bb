package marketdata

import (
	"testing"
	"time"
)

func newTestClient(symbols ...string) *Client {
	return New("key", "wss://example.test/ws", symbols, time.Second, time.Second).(*Client)
}

func TestDecodeQuotesFiltersInvalid(t *testing.T) {
	c := newTestClient("NLX-EAST", "NLX-WEST")

	frame := []byte(`{"type":"trade","data":[
		{"s":"NLX-EAST","p":101.5,"v":12,"t":1767225600000},
		{"s":"","p":50,"v":1,"t":1767225600000},
		{"s":"NLX-EAST","p":0,"v":1,"t":1767225600000},
		{"s":"NLX-EAST","p":-3,"v":1,"t":1767225600000},
		{"s":"NLX-EAST","p":99,"v":1,"t":0},
		{"s":"NLX-WEST","p":42.25,"v":3,"t":1767312000000}
	]}`)

	quotes := c.decodeQuotes(frame)
	if len(quotes) != 2 {
		t.Fatalf("expected 2 valid quotes, got %d", len(quotes))
	}
	if quotes[0].Symbol != "NLX-EAST" || quotes[0].Price != 101.5 {
		t.Fatalf("unexpected first quote: %+v", quotes[0])
	}
	if got := quotes[0].Timestamp; !got.Equal(time.UnixMilli(1767225600000)) {
		t.Fatalf("timestamp not converted from ms: %v", got)
	}
	if quotes[1].Symbol != "NLX-WEST" || quotes[1].Price != 42.25 {
		t.Fatalf("unexpected second quote: %+v", quotes[1])
	}
}

func TestDecodeQuotesDropsUnsubscribed(t *testing.T) {
	c := newTestClient("NLX-EAST")

	frame := []byte(`{"type":"trade","data":[
		{"s":"NLX-EAST","p":10,"v":1,"t":1767225600000},
		{"s":"NLX-ROGUE","p":10,"v":1,"t":1767225600000}
	]}`)

	quotes := c.decodeQuotes(frame)
	if len(quotes) != 1 || quotes[0].Symbol != "NLX-EAST" {
		t.Fatalf("expected only subscribed symbol, got %+v", quotes)
	}
}

func TestDecodeQuotesIgnoresNonTradeFrames(t *testing.T) {
	c := newTestClient("NLX-EAST")

	for _, frame := range []string{
		`{"type":"ping"}`,
		`{"type":"error","msg":"bad token"}`,
		`not json`,
	} {
		if quotes := c.decodeQuotes([]byte(frame)); len(quotes) != 0 {
			t.Fatalf("frame %q produced quotes: %+v", frame, quotes)
		}
	}
}

func TestNewDedupesSymbols(t *testing.T) {
	c := newTestClient("NLX-EAST", "NLX-EAST", "", "NLX-WEST")
	if len(c.symbols) != 2 {
		t.Fatalf("expected 2 distinct symbols, got %v", c.symbols)
	}
}
