package models

import "GeoPulse/pkg/util"

// Requests for feed HTTP endpoints. Defined in domain for consistency and reuse.

type FeedRequest struct {
	RegionID      string `query:"region_id" json:"region_id" validate:"required"`
	Days          int    `query:"days" json:"days" default:"30" validate:"gte=7,lte=90"`
	IncludeMarket bool   `query:"include_market" json:"include_market"`
}

type FeedAllRequest struct {
	Days int `query:"days" json:"days" default:"30" validate:"gte=7,lte=90"`
}

type RefreshRequest struct {
	RegionID string `query:"region_id" json:"region_id"`
}

// Response DTOs. Numeric fields are rounded for presentation; the simulation
// keeps full precision internally.

type HeadlineDTO struct {
	Title     string  `json:"title"`
	Source    string  `json:"source"`
	Date      string  `json:"date"`
	Sentiment float64 `json:"sentiment"`
}

type PhysicalDTO struct {
	ProxyType          string  `json:"proxy_type"`
	ActivityDeltaPct   float64 `json:"activity_delta_pct"`
	NightLightDeltaPct float64 `json:"night_light_delta_pct"`
	VegetationDeltaPct float64 `json:"vegetation_delta_pct"`
	Confidence         float64 `json:"confidence"`
	AnomalyStrength    float64 `json:"anomaly_strength"`
	BaselineWindowDays int     `json:"baseline_window_days"`
}

type NarrativeDTO struct {
	SentimentScore  float64       `json:"sentiment_score"`
	HypeIntensity   float64       `json:"hype_intensity"`
	HeadlineVolume  int           `json:"headline_volume"`
	DuplicateRatio  float64       `json:"duplicate_ratio"`
	PumpLexiconRate float64       `json:"pump_lexicon_rate"`
	SourceDiversity float64       `json:"source_diversity"`
	Confidence      float64       `json:"confidence"`
	Headlines       []HeadlineDTO `json:"headlines"`
}

type RegimeDTO struct {
	Type      string  `json:"type"`
	StartDay  int     `json:"start_day"`
	Duration  int     `json:"duration"`
	Intensity float64 `json:"intensity"`
}

type DayDTO struct {
	Date            string       `json:"date"`
	DayOffset       int          `json:"day_offset"`
	PhysicalScore   float64      `json:"physical_score"`
	NarrativeScore  float64      `json:"narrative_score"`
	DivergenceScore float64      `json:"divergence_score"`
	Physical        PhysicalDTO  `json:"physical"`
	Narrative       NarrativeDTO `json:"narrative"`
	Regime          *RegimeDTO   `json:"regime,omitempty"`
}

type AlertDTO struct {
	Level    string `json:"level"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

type MarketDTO struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Change1DPct    float64 `json:"change_1d_pct"`
	Change1WPct    float64 `json:"change_1w_pct"`
	SignalStrength float64 `json:"signal_strength"`
	Trend          string  `json:"trend"`
	Derived        bool    `json:"derived"`
	AsOf           string  `json:"as_of"`
}

type FeedResponse struct {
	RegionID    string     `json:"region_id"`
	RegionName  string     `json:"region_name"`
	AnchorDate  string     `json:"anchor_date"`
	WindowDays  int        `json:"window_days"`
	GeneratedAt string     `json:"generated_at"`
	Days        []DayDTO   `json:"days"`
	Divergence  float64    `json:"divergence"`
	Alerts      []AlertDTO `json:"alerts"`
	Market      *MarketDTO `json:"market,omitempty"`
}

type RegionDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProxyType string `json:"proxy_type"`
	Symbol    string `json:"symbol"`
}

// ToFeedResponse shapes a feed for the HTTP surface.
func ToFeedResponse(feed *RegionFeed) FeedResponse {
	resp := FeedResponse{
		RegionID:    feed.RegionID,
		RegionName:  feed.RegionName,
		AnchorDate:  feed.AnchorDate.Format(util.DayLayout),
		WindowDays:  feed.WindowDays,
		GeneratedAt: feed.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Days:        make([]DayDTO, 0, len(feed.Days)),
		Divergence:  util.Round1(feed.Divergence),
		Alerts:      make([]AlertDTO, 0, len(feed.Alerts)),
	}
	for i := range feed.Days {
		resp.Days = append(resp.Days, toDayDTO(&feed.Days[i]))
	}
	for _, a := range feed.Alerts {
		resp.Alerts = append(resp.Alerts, AlertDTO{
			Level:    string(a.Level),
			Category: a.Category,
			Title:    a.Title,
			Message:  a.Message,
		})
	}
	if feed.Market != nil {
		m := ToMarketDTO(feed.Market)
		resp.Market = &m
	}
	return resp
}

func toDayDTO(d *DayRecord) DayDTO {
	dto := DayDTO{
		Date:            d.Date.Format(util.DayLayout),
		DayOffset:       d.DayOffset,
		PhysicalScore:   util.Round3(d.PhysicalScore),
		NarrativeScore:  util.Round3(d.NarrativeScore),
		DivergenceScore: util.Round1(d.DivergenceScore),
		Physical: PhysicalDTO{
			ProxyType:          d.Physical.ProxyType,
			ActivityDeltaPct:   util.Round1(d.Physical.ActivityDeltaPct),
			NightLightDeltaPct: util.Round1(d.Physical.NightLightDeltaPct),
			VegetationDeltaPct: util.Round1(d.Physical.VegetationDeltaPct),
			Confidence:         util.Round2(d.Physical.Confidence),
			AnomalyStrength:    util.Round2(d.Physical.AnomalyStrength),
			BaselineWindowDays: d.Physical.BaselineWindowDays,
		},
		Narrative: NarrativeDTO{
			SentimentScore:  util.Round3(d.Narrative.SentimentScore),
			HypeIntensity:   util.Round1(d.Narrative.HypeIntensity),
			HeadlineVolume:  d.Narrative.HeadlineVolume,
			DuplicateRatio:  util.Round2(d.Narrative.DuplicateRatio),
			PumpLexiconRate: util.Round2(d.Narrative.PumpLexiconRate),
			SourceDiversity: util.Round2(d.Narrative.SourceDiversity),
			Confidence:      util.Round2(d.Narrative.Confidence),
			Headlines:       make([]HeadlineDTO, 0, len(d.Narrative.Headlines)),
		},
	}
	for _, h := range d.Narrative.Headlines {
		dto.Narrative.Headlines = append(dto.Narrative.Headlines, HeadlineDTO{
			Title:     h.Title,
			Source:    h.Source,
			Date:      h.Date,
			Sentiment: util.Round2(h.Sentiment),
		})
	}
	if d.Regime != nil {
		dto.Regime = &RegimeDTO{
			Type:      string(d.Regime.Type),
			StartDay:  d.Regime.StartDay,
			Duration:  d.Regime.Duration,
			Intensity: util.Round2(d.Regime.Intensity),
		}
	}
	return dto
}

// ToMarketDTO shapes a market snapshot for the HTTP surface.
func ToMarketDTO(m *MarketSnapshot) MarketDTO {
	return MarketDTO{
		Symbol:         m.Symbol,
		Name:           m.Name,
		Price:          util.Round2(m.Price),
		Change1DPct:    util.Round2(m.Change1DPct),
		Change1WPct:    util.Round2(m.Change1WPct),
		SignalStrength: util.Round3(m.SignalStrength),
		Trend:          m.Trend,
		Derived:        m.Derived,
		AsOf:           m.AsOf.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
