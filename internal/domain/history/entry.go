package history

import (
	"time"

	"github.com/edirooss/urlparts/pkg/urlparts"
)

// Entry is one recorded decomposition.
type Entry struct {
	ID       string            `json:"id"`    // uuid
	Input    string            `json:"input"` // raw, untrimmed
	Parts    urlparts.URLParts `json:"parts"` //
	Valid    *bool             `json:"valid"` // nullable; nil when host validation was not requested
	ParsedAt time.Time         `json:"parsed_at"`
}

// Summary aggregates recorded entries.
type Summary struct {
	Total      int64          `json:"total"`       // entries ever recorded
	Retained   int            `json:"retained"`    // entries currently kept
	ByProtocol map[string]int `json:"by_protocol"` // "" key counts absent protocols
	TopHosts   []HostCount    `json:"top_hosts"`
	Params     ParamStats     `json:"params"`
}

type HostCount struct {
	Host  string `json:"host"`
	Count int    `json:"count"`
}

type ParamStats struct {
	WithSearch int `json:"with_search"` // entries that had a search string
	Pairs      int `json:"pairs"`       // total key=value pairs
}
