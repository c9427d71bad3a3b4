package enums

// AlertSeverity classifies a low-stock alert by how far below threshold the
// aggregate quantity sits.
type AlertSeverity string

const (
	AlertSeverityUrgent  AlertSeverity = "urgent"
	AlertSeverityWarning AlertSeverity = "warning"
)

// String implements fmt.Stringer.
func (s AlertSeverity) String() string {
	return string(s)
}

// Rank orders severities for sorting, most severe first.
func (s AlertSeverity) Rank() int {
	if s == AlertSeverityUrgent {
		return 0
	}
	return 1
}
