package diag

// Severity of a diagnostic; a higher value is more severe.
// Expansion rules report only SevError.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	// SevError fails the expansion of a file: its source is kept unchanged.
	SevError
)

// SeverityOf восстанавливает уровень из байта дискового кеша.
// Неизвестное значение считается ошибкой.
func SeverityOf(b uint8) Severity {
	if s := Severity(b); s <= SevError {
		return s
	}
	return SevError
}

// String gives the upper-case label used by the pretty, JSON and plugin outputs.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
