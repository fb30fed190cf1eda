package epg

import (
	"strings"
	"testing"
	"time"
)

func TestGeneratorRoundTrip(t *testing.T) {
	parser := NewParser()
	extractor := NewExtractor()
	merger := NewMerger()
	generator := NewGenerator()

	tv, err := parser.Run([]byte(sampleXMLTV))
	if err != nil {
		t.Fatal(err)
	}

	channels, programmes := extractor.Run(tv, nil, Window{}, time.Now())
	merged, err := merger.Run([]SourceResult{{Source: "test", Channels: channels, Programmes: programmes}})
	if err != nil {
		t.Fatal(err)
	}

	doc, err := generator.Run(merged)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Expected XML declaration")
	}
	if !strings.Contains(doc, `generator-info-name="`+GeneratorName+`"`) {
		t.Error("Expected generator metadata in output")
	}

	// Serialized bytes must parse back to the same channel ids and
	// programme count
	reparsed, err := parser.Run([]byte(doc))
	if err != nil {
		t.Fatalf("Round-trip parse failed: %v", err)
	}

	if len(reparsed.Channels) != len(merged.Channels) {
		t.Fatalf("Channel count changed: %d != %d", len(reparsed.Channels), len(merged.Channels))
	}
	for i := range merged.Channels {
		if reparsed.Channels[i].ID != merged.Channels[i].ID {
			t.Errorf("Channel id changed at %d: %s != %s", i, reparsed.Channels[i].ID, merged.Channels[i].ID)
		}
	}
	if len(reparsed.Programmes) != len(merged.Programmes) {
		t.Errorf("Programme count changed: %d != %d", len(reparsed.Programmes), len(merged.Programmes))
	}

	// Opaque bodies travel through unchanged
	if !strings.Contains(doc, "<title>News &amp; Weather</title>") {
		t.Error("Expected entity-escaped programme body to be emitted verbatim")
	}
	if !strings.Contains(doc, `<icon src="https://example.com/sky.png"/>`) {
		t.Error("Expected channel icon to survive the round trip")
	}
}

func TestGeneratorEscapesAttributes(t *testing.T) {
	generator := NewGenerator()

	tv := &TV{
		Generator:    "epg-comb",
		GeneratorURL: "https://example.com/?a=1&b=2",
		Channels:     []Channel{{ID: `odd"id&`, DisplayNames: []string{"A & B"}}},
		Programmes:   []Programme{{Channel: `odd"id&`, Start: "20240105120000"}},
	}

	doc, err := generator.Run(tv)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(doc, `id="odd"id&"`) {
		t.Error("Attribute value was not escaped")
	}
	if !strings.Contains(doc, "a=1&amp;b=2") {
		t.Error("Expected ampersand escaped in generator url")
	}

	// Synthesized channel without a captured body falls back to display names
	if !strings.Contains(doc, "<display-name>A &amp; B</display-name>") {
		t.Error("Expected display-name fallback with escaped text")
	}

	if _, err := NewParser().Run([]byte(doc)); err != nil {
		t.Errorf("Escaped output should parse cleanly: %v", err)
	}
}

func TestGeneratorOmitsEmptyStop(t *testing.T) {
	generator := NewGenerator()

	tv := &TV{
		Channels:   []Channel{{ID: "1", DisplayNames: []string{"Sky"}}},
		Programmes: []Programme{{Channel: "1", Start: "20240105120000"}},
	}

	doc, err := generator.Run(tv)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(doc, `stop=""`) {
		t.Error("Empty stop attribute must be omitted")
	}
}
