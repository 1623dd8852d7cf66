package scraper

import "encoding/json"

// SentinelUnknown is how an unknown field renders in reports and JSON dumps.
const SentinelUnknown = "UNKNOWN"

// Field is a scraped string value that may be unknown. A field is unknown
// when its source element was missing or its fetch failed; that is a
// first-class state, not an empty string, so downstream logic has to decide
// explicitly what to do with it.
type Field struct {
	value string
	known bool
}

func Known(value string) Field {
	return Field{value: value, known: true}
}

func Unknown() Field {
	return Field{}
}

func (f Field) IsKnown() bool { return f.known }

// Value returns the underlying text, which is only meaningful when IsKnown.
func (f Field) Value() string { return f.value }

// String renders the value, or the UNKNOWN sentinel.
func (f Field) String() string {
	if !f.known {
		return SentinelUnknown
	}
	return f.value
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == SentinelUnknown {
		*f = Unknown()
	} else {
		*f = Known(s)
	}
	return nil
}
