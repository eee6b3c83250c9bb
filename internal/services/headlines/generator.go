package headlines

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"GeoPulse/internal/domain/models"
	"GeoPulse/pkg/util"
)

// Template pools by category. {region} is replaced with the region name.
var templates = map[string][]string{
	"bullish": {
		"{region} exports surge as demand rebounds",
		"Analysts upgrade {region} outlook amid strong indicators",
		"{region} activity hits multi-month high",
		"Investment flows into {region} accelerate",
		"Record throughput reported at {region}",
		"{region} expansion plans signal confidence",
		"Supply chain improvements boost {region} operations",
		"Strong Q4 expected for {region} logistics",
	},
	"bearish": {
		"Concerns mount over {region} slowdown",
		"{region} activity falls short of expectations",
		"Analysts warn of {region} headwinds",
		"Trade disruptions impact {region} operations",
		"{region} faces mounting pressure",
		"Uncertainty clouds {region} outlook",
		"Shipping delays reported at {region}",
		"{region} throughput declines amid weak demand",
	},
	"neutral": {
		"{region} activity holds steady",
		"Mixed signals from {region} data",
		"{region} operations remain stable",
		"Analysts maintain cautious view on {region}",
		"{region} throughput in line with expectations",
		"No major changes reported at {region}",
	},
	"hype_pump": {
		"BREAKING: {region} poised for explosive growth",
		"Why {region} is the next big opportunity",
		"Insiders bullish on {region} prospects",
		"{region} rally just getting started, analysts say",
		"Smart money flowing into {region}",
		"Don't miss the {region} boom",
	},
	"supply_shock": {
		"ALERT: Major disruption reported at {region}",
		"{region} operations halted amid crisis",
		"Emergency measures activated at {region}",
		"Supply chain chaos as {region} disruption spreads",
		"{region} closure sends shockwaves through markets",
		"Critical delays expected following {region} incident",
	},
	"panic_sell": {
		"{region} collapse fears grip markets",
		"Investors flee {region} exposure",
		"Is {region} the next crisis hotspot?",
		"Warning signs flash red for {region}",
		"Analysts slash {region} forecasts",
		"{region} sentiment hits new lows",
	},
	"recovery": {
		"{region} shows signs of stabilization",
		"Recovery takes hold at {region}",
		"Worst may be over for {region}, analysts suggest",
		"{region} operations gradually resume",
		"Confidence returns to {region}",
	},
}

// categoryOf indexes templates back to their pool for sentiment scoring.
var categoryOf = func() map[string]string {
	m := make(map[string]string)
	for cat, pool := range templates {
		for _, t := range pool {
			m[t] = cat
		}
	}
	return m
}()

var sources = []string{
	"Reuters",
	"Bloomberg",
	"Financial Times",
	"WSJ",
	"CNBC",
	"MarketWatch",
	"Shipping Gazette",
	"Trade Weekly",
	"Port News Daily",
	"Supply Chain Digest",
	"Logistics Today",
	"Global Trade Review",
}

// Generator produces illustrative headlines deterministically from a text
// seed. It never touches the caller's PRNG, so text changes cannot shift
// the numeric series.
type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Generate(textSeed int64, regionName string, date time.Time, sentiment float64, regime *models.Regime, count int) ([]models.Headline, error) {
	rng := rand.New(rand.NewSource(textSeed))
	out := make([]models.Headline, 0, count)
	used := make(map[string]bool)

	for i := 0; i < count; i++ {
		template := pickTemplate(rng, sentiment, regime)
		for attempt := 0; attempt < 10 && used[template]; attempt++ {
			template = pickTemplate(rng, sentiment, regime)
		}
		used[template] = true

		out = append(out, models.Headline{
			Title:     strings.ReplaceAll(template, "{region}", regionName),
			Source:    sources[rng.Intn(len(sources))],
			Date:      date.Format(util.DayLayout),
			Sentiment: headlineSentiment(rng, template, sentiment),
		})
	}

	// Most impactful first.
	sort.SliceStable(out, func(a, b int) bool {
		return math.Abs(out[a].Sentiment) > math.Abs(out[b].Sentiment)
	})
	return out, nil
}

// pickTemplate prefers regime-flavored pools, falling back to a pool chosen
// by the day's sentiment.
func pickTemplate(rng *rand.Rand, sentiment float64, regime *models.Regime) string {
	if regime != nil {
		switch regime.Type {
		case models.RegimeHypePump:
			if rng.Float64() < 0.6 {
				return choice(rng, templates["hype_pump"])
			}
		case models.RegimeSupplyShock:
			if rng.Float64() < 0.7 {
				return choice(rng, templates["supply_shock"])
			}
		case models.RegimePanicSell:
			if rng.Float64() < 0.6 {
				return choice(rng, templates["panic_sell"])
			}
		case models.RegimeMeanReversion:
			if rng.Float64() < 0.4 {
				return choice(rng, templates["recovery"])
			}
		}
	}

	switch {
	case sentiment > 0.25:
		return choice(rng, templates["bullish"])
	case sentiment < -0.25:
		return choice(rng, templates["bearish"])
	default:
		return choice(rng, templates["neutral"])
	}
}

func headlineSentiment(rng *rand.Rand, template string, base float64) float64 {
	switch categoryOf[template] {
	case "bullish", "hype_pump":
		return 0.5 + rng.Float64()*0.4
	case "bearish", "panic_sell", "supply_shock":
		return -0.5 - rng.Float64()*0.4
	case "recovery":
		return 0.2 + rng.Float64()*0.3
	case "neutral":
		return -0.2 + rng.Float64()*0.4
	default:
		return base
	}
}

func choice(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}
