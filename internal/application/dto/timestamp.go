package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp normaliza las dos formas en que llegan fechas por el wire:
// string ISO-8601 o el documento legado {"_seconds": n, "_nanoseconds": n}
// (formato de timestamp de la base documental anterior). Esta es la única
// frontera de normalización; aguas adentro solo circula time.Time.
type Timestamp struct {
	time.Time
}

// legacyTimestamp forma {_seconds,_nanoseconds}.
type legacyTimestamp struct {
	Seconds     *int64 `json:"_seconds"`
	Nanoseconds int64  `json:"_nanoseconds"`
}

// Formatos ISO aceptados, del más al menos específico.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON acepta string ISO-8601 o {_seconds,_nanoseconds}.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		for _, layout := range isoLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed
				return nil
			}
		}
		return fmt.Errorf("timestamp: formato de fecha no reconocido %q", s)
	}
	var legacy legacyTimestamp
	if err := json.Unmarshal(b, &legacy); err != nil {
		return fmt.Errorf("timestamp: ni ISO-8601 ni {_seconds,_nanoseconds}: %w", err)
	}
	if legacy.Seconds == nil {
		return fmt.Errorf("timestamp: documento sin _seconds")
	}
	t.Time = time.Unix(*legacy.Seconds, legacy.Nanoseconds)
	return nil
}

// MarshalJSON siempre emite RFC3339 (la app solo consume la forma ISO).
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
