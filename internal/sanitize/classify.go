package sanitize

// Verdict is the anonymization state of one segment.
type Verdict int

const (
	NotAnonymized Verdict = iota
	Anonymized
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case NotAnonymized:
		return "not_anonymized"
	case Anonymized:
		return "anonymized"
	default:
		return "unknown"
	}
}

// Classify decides whether a segment lost its timestamps. A segment is
// anonymized when none of its points carries one. When the count itself could
// not be evaluated (extractErr != nil) the verdict is Unknown, which callers
// must treat as an extraction failure rather than either other case.
func Classify(timestamps int, extractErr error) Verdict {
	switch {
	case extractErr != nil:
		return Unknown
	case timestamps > 0:
		return NotAnonymized
	default:
		return Anonymized
	}
}
