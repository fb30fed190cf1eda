package epg

import (
	"encoding/xml"
	"time"
)

// TV is the root of an XMLTV document.
type TV struct {
	XMLName      xml.Name    `xml:"tv"`
	Generator    string      `xml:"generator-info-name,attr,omitempty"`
	GeneratorURL string      `xml:"generator-info-url,attr,omitempty"`
	Channels     []Channel   `xml:"channel"`
	Programmes   []Programme `xml:"programme"`
}

// Channel keeps its child elements verbatim in Inner so icons, urls and
// localized display-name variants survive the merge untouched. DisplayNames
// is decoded alongside for keyword matching.
type Channel struct {
	ID           string   `xml:"id,attr"`
	DisplayNames []string `xml:"display-name"`
	Inner        string   `xml:",innerxml"`
}

// Programme carries its body (title, desc, credits, ...) opaquely; the
// pipeline only interprets the channel reference and the start timestamp.
type Programme struct {
	Channel string `xml:"channel,attr"`
	Start   string `xml:"start,attr"`
	Stop    string `xml:"stop,attr"`
	Inner   string `xml:",innerxml"`
}

// SourceResult is the retained subset contributed by one source, in
// document order.
type SourceResult struct {
	Source     string
	Channels   []Channel
	Programmes []Programme
}

// Window bounds which programme start times are worth retaining, relative
// to the run's wall clock. A disabled window retains everything.
type Window struct {
	Enabled       bool
	PastGrace     time.Duration
	FutureHorizon time.Duration
}

// Contains reports whether a compact XMLTV start timestamp falls inside the
// window. Start attributes are YYYYMMDDHHMMSS or YYYYMMDDHHMM with an
// optional timezone suffix, which is ignored. Malformed or too-short values
// keep the programme rather than silently dropping data.
func (w Window) Contains(start string, now time.Time) bool {
	if !w.Enabled {
		return true
	}

	t, ok := parseStart(start)
	if !ok {
		return true
	}

	return !t.Before(now.Add(-w.PastGrace)) && !t.After(now.Add(w.FutureHorizon))
}

func parseStart(start string) (time.Time, bool) {
	if len(start) >= 14 {
		if t, err := time.ParseInLocation("20060102150405", start[:14], time.Local); err == nil {
			return t, true
		}
	}
	if len(start) >= 12 {
		if t, err := time.ParseInLocation("200601021504", start[:12], time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
