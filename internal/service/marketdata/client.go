package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"GeoPulse/internal/domain/models"
	drepo "GeoPulse/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a MarketStream over a quote-feed WebSocket. It owns
// the quote-level hygiene: frames are decoded, validated, and filtered to
// the subscribed symbol set before anything reaches the consumer, so the
// collector only ever sees well-formed quotes.
type Client struct {
	apiKey         string
	websocketURL   string
	symbols        []string
	subscribed     map[string]struct{}
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new WebSocket MarketStream for the given symbols.
// Duplicate and empty symbols are dropped.
func New(apiKey, websocketURL string, symbols []string, reconnectDelay, pingInterval time.Duration) drepo.MarketStream {
	c := &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		subscribed:     make(map[string]struct{}, len(symbols)),
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
	for _, s := range symbols {
		if s == "" {
			continue
		}
		if _, ok := c.subscribed[s]; ok {
			continue
		}
		c.subscribed[s] = struct{}{}
		c.symbols = append(c.symbols, s)
	}
	return c
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("marketdata connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("marketdata: connected")
	return nil
}

// Subscribe subscribes to configured symbols.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("marketdata not connected")
	}
	for _, s := range c.symbols {
		msg := map[string]string{"type": "subscribe", "symbol": s}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
		log.Printf("marketdata: subscribed %s", s)
	}
	return nil
}

type wsQuote struct {
	S string  `json:"s"`
	P float64 `json:"p"`
	V float64 `json:"v"`
	T int64   `json:"t"` // ms
}

type wsMessage struct {
	Type string    `json:"type"`
	Data []wsQuote `json:"data"`
}

// decodeQuotes turns a raw frame into validated quotes. Non-trade frames
// yield nothing. Quotes with an empty or unsubscribed symbol, a
// non-positive price, or a missing timestamp are discarded here so the
// rolling windows never absorb junk ticks.
func (c *Client) decodeQuotes(frame []byte) []*models.Quote {
	var m wsMessage
	if err := json.Unmarshal(frame, &m); err != nil {
		return nil
	}
	if m.Type != "trade" {
		return nil
	}
	quotes := make([]*models.Quote, 0, len(m.Data))
	for _, d := range m.Data {
		if d.S == "" || d.P <= 0 || d.T <= 0 {
			continue
		}
		if _, ok := c.subscribed[d.S]; !ok {
			continue
		}
		quotes = append(quotes, &models.Quote{
			Symbol:    d.S,
			Price:     d.P,
			Volume:    d.V,
			Timestamp: time.UnixMilli(d.T),
		})
	}
	return quotes
}

// Read streams validated Quote events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.Quote, <-chan error) {
	quotes := make(chan *models.Quote, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(quotes)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("marketdata conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("marketdata read: %w", err)
					return
				}
				for _, q := range c.decodeQuotes(b) {
					select {
					case quotes <- q:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return quotes, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
