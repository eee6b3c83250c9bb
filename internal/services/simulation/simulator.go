package simulation

import (
	"context"
	"math"
	"math/rand"
	"time"

	"GeoPulse/internal/domain/models"
	"GeoPulse/internal/domain/service"
	"GeoPulse/pkg/util"
)

// Simulator generates the deterministic two-channel series for one region.
// The physical channel follows an AR(1) process around the region baseline;
// the narrative channel tracks sentiment with its own persistence. Scheduled
// regimes push the two apart.
type Simulator struct {
	profile   *models.RegionProfile
	headlines service.HeadlineGenerator
	tuning    Tuning
}

// state carries the AR(1) levels between days.
type state struct {
	phys float64
	narr float64
}

func New(profile *models.RegionProfile, headlines service.HeadlineGenerator, tuning Tuning) *Simulator {
	return &Simulator{
		profile:   profile,
		headlines: headlines,
		tuning:    tuning,
	}
}

// Run produces windowDays of records ending at anchor. The run is fully
// determined by the region ID and the anchor date: repeating the call
// yields byte-identical numeric output.
func (s *Simulator) Run(ctx context.Context, anchor time.Time, windowDays int) ([]models.DayRecord, []models.Regime, error) {
	anchor = util.StartOfDay(anchor)
	seed := SeedFor(s.profile.ID, anchor)
	rng := rand.New(rand.NewSource(seed))

	regimes := scheduleRegimes(rng, s.profile, windowDays, s.tuning)

	st := state{phys: s.profile.PhysBaseline, narr: s.profile.SentimentBias}
	days := make([]models.DayRecord, 0, windowDays)

	for d := 0; d < windowDays; d++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		date := anchor.AddDate(0, 0, -(windowDays - 1 - d))
		regime := activeRegime(regimes, d)

		physScore, physRaw := s.physicalDay(rng, &st, regime, d, date)
		narrScore, narrRaw := s.narrativeDay(rng, &st, regime, d, date, seed)


		days = append(days, models.DayRecord{
			Date:           date,
			DayOffset:      d,
			PhysicalScore:  physScore,
			NarrativeScore: narrScore,
			Physical:       physRaw,
			Narrative:      narrRaw,
			Regime:         regime,
		})
	}

	return days, regimes, nil
}

func activeRegime(regimes []models.Regime, day int) *models.Regime {
	for i := range regimes {
		if regimes[i].IsActive(day) {
			return &regimes[i]
		}
	}
	return nil
}

func (s *Simulator) physicalDay(rng *rand.Rand, st *state, regime *models.Regime, day int, date time.Time) (float64, models.PhysicalRaw) {
	p := s.profile

	weekendMult := 1.0
	if util.IsWeekend(date) {
		weekendMult = p.WeekendMultiplier
	}

	// AR(1) step toward the baseline, then the regime shift on top.
	noise := rng.NormFloat64() * p.PhysVolatility
	st.phys = p.Persistence*st.phys + (1-p.Persistence)*p.PhysBaseline + noise

	progress := 0.0
	if regime != nil {
		progress = regime.Progress(day)
	}
	effect := physicalRegimeEffect(regime, progress, st.phys)

	score := util.Clamp((st.phys+effect)*weekendMult, -1, 1)

	activityDelta := score * 60
	nightLightDelta := score*40 + rng.NormFloat64()*5
	vegetationDelta := -score*20 + rng.NormFloat64()*3

	// Confidence drops when the day's noise dominates the trend.
	volatilityPenalty := 0.0
	if p.PhysVolatility > 0 {
		volatilityPenalty = math.Min(0.3, math.Abs(noise)/p.PhysVolatility*0.15)
	}
	confidence := 0.6 + 0.35*math.Abs(score) - volatilityPenalty
	confidence = util.Clamp(confidence+rng.NormFloat64()*0.05, 0.3, 0.95)

	anomaly := math.Min(1, math.Abs(score-p.PhysBaseline)/0.5)

	raw := models.PhysicalRaw{
		ProxyType:          p.ProxyType,
		ActivityDeltaPct:   activityDelta,
		NightLightDeltaPct: nightLightDelta,
		VegetationDeltaPct: vegetationDelta,
		Confidence:         confidence,
		AnomalyStrength:    anomaly,
		BaselineWindowDays: s.tuning.BaselineWindowDays,
	}
	return score, raw
}

func (s *Simulator) narrativeDay(rng *rand.Rand, st *state, regime *models.Regime, day int, date time.Time, seed int64) (float64, models.NarrativeRaw) {
	p := s.profile
	t := s.tuning

	noise := rng.NormFloat64() * t.NarrativeNoiseSigma
	st.narr = t.NarrativePersistence*st.narr + (1-t.NarrativePersistence)*p.SentimentBias + noise

	progress := 0.0
	if regime != nil {
		progress = regime.Progress(day)
	}
	sentimentMod, hypeBoost := narrativeRegimeEffect(regime, progress, st.narr)

	sentiment := util.Clamp(st.narr+sentimentMod, -1, 1)

	// Headline volume: baseline scaled by hype, occasional spike, jitter.
	volumeMult := 1 + hypeBoost/100
	spike := 1.0
	if rng.Float64() < t.VolumeSpikeProb {
		spike = t.VolumeSpikeMult
	}
	volume := int(float64(p.VolumeBaseline) * volumeMult * spike)
	volume += randBetween(rng, -20, 20)
	if volume < 10 {
		volume = 10
	}
	if volume > 300 {
		volume = 300
	}

	baseHype := p.HypeTendency * 40
	duplicateRatio := 0.1 + p.HypeTendency*0.3 + rng.Float64()*0.2
	pumpLexicon := 0.05 + math.Max(0, sentiment)*0.3 + rng.Float64()*0.1

	if regime != nil && regime.Type == models.RegimeHypePump {
		duplicateRatio += 0.2 * regime.Intensity
		pumpLexicon += 0.25 * regime.Intensity
	}
	duplicateRatio = math.Min(0.8, duplicateRatio)
	pumpLexicon = math.Min(0.6, pumpLexicon)

	hype := baseHype + hypeBoost + duplicateRatio*30 + pumpLexicon*20 +
		(float64(volume)/float64(p.VolumeBaseline)-1)*15
	hype = util.Clamp(hype, 0, 100)

	// High hype narrows the source pool: echo chamber.
	diversity := p.DiversityBaseline
	if regime != nil && regime.Type == models.RegimeHypePump {
		diversity -= 0.2 * regime.Intensity
	}
	diversity = util.Clamp(diversity+rng.NormFloat64()*0.05, 0.2, 0.95)

	adjusted := sentiment * (0.5 + 0.5*diversity)

	volumeFactor := math.Min(1, float64(volume)/100)
	confidence := 0.4 + 0.3*volumeFactor + 0.25*diversity
	confidence = util.Clamp(confidence+rng.NormFloat64()*0.05, 0.3, 0.95)

	// Headline text is illustrative only. A failing generator leaves the
	// day without headlines; the numeric series is unaffected.
	headlines, err := s.headlines.Generate(TextSeed(seed, day), p.Name, date, sentiment, regime, t.HeadlinesPerDay)
	if err != nil {
		headlines = nil
	}

	raw := models.NarrativeRaw{
		SentimentScore:  adjusted,
		HypeIntensity:   hype,
		HeadlineVolume:  volume,
		DuplicateRatio:  duplicateRatio,
		PumpLexiconRate: pumpLexicon,
		SourceDiversity: diversity,
		Confidence:      confidence,
		Headlines:       headlines,
	}
	return adjusted, raw
}
