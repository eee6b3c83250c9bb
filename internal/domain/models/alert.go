package models

// AlertLevel classifies a divergence reading by severity.
type AlertLevel string

const (
	AlertLevelOK       AlertLevel = "ok"
	AlertLevelWatch    AlertLevel = "watch"
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
	AlertLevelAdvisory AlertLevel = "advisory"
	AlertLevelInfo     AlertLevel = "info"
)

// Alert is one classified finding about the current signal state.
type Alert struct {
	Level    AlertLevel
	Category string
	Title    string
	Message  string
}
