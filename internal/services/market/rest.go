package market

import (
	"context"
	"fmt"
	"time"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/domain/repository"
	"GeoPulse/internal/domain/service"
	xhttp "GeoPulse/pkg/http"
	"GeoPulse/pkg/util"
)

// quoteResponse mirrors the upstream quote payload.
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePct     float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
}

// RESTProvider fetches quotes over the upstream REST API. Errors fall
// through to the deterministic fallback so the overlay stays available.
type RESTProvider struct {
	profiles repository.ProfileStore
	fallback service.MarketProvider
	client   *xhttp.Client
	baseURL  string
	apiKey   string
	now      func() time.Time
}

func NewRESTProvider(profiles repository.ProfileStore, fallback service.MarketProvider, baseURL, apiKey string) *RESTProvider {
	return &RESTProvider{
		profiles: profiles,
		fallback: fallback,
		client:   xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
		baseURL:  baseURL,
		apiKey:   apiKey,
		now:      time.Now,
	}
}

func (p *RESTProvider) Snapshot(ctx context.Context, regionID string) (*models.MarketSnapshot, error) {
	profile, err := p.profiles.Get(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if profile.MarketSymbol == "" {
		return nil, fmt.Errorf("market: region %s has no symbol", regionID)
	}

	var quote quoteResponse
	err = p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.baseURL + "/quote",
		QueryParams: map[string][]string{
			"symbol": {profile.MarketSymbol},
			"token":  {p.apiKey},
		},
	}, &quote)
	if err != nil || quote.Current == 0 {
		if p.fallback != nil {
			return p.fallback.Snapshot(ctx, regionID)
		}
		if err == nil {
			err = fmt.Errorf("market: empty quote for %s", profile.MarketSymbol)
		}
		return nil, err
	}

	// The quote endpoint carries daily movement only; the weekly change
	// settles once streamed history accrues.
	strength := util.Clamp(quote.ChangePct/10, -1, 1)
	return &models.MarketSnapshot{
		Symbol:         profile.MarketSymbol,
		Name:           profile.MarketName,
		Price:          quote.Current,
		Change1DPct:    quote.ChangePct,
		Change1WPct:    quote.ChangePct,
		SignalStrength: strength,
		Trend:          models.TrendFor(strength),
		Derived:        false,
		AsOf:           p.now(),
	}, nil
}
