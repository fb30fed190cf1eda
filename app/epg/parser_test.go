package epg

import (
	"errors"
	"strings"
	"testing"
)

const sampleXMLTV = `<?xml version="1.0" encoding="UTF-8"?>
<tv generator-info-name="test" generator-info-url="https://example.com">
  <channel id="uk.sky1">
    <display-name>Sky Sports Main Event</display-name>
    <display-name lang="en">Sky Sports ME</display-name>
    <icon src="https://example.com/sky.png"/>
  </channel>
  <channel id="uk.bbc1">
    <display-name>BBC One</display-name>
  </channel>
  <programme start="20240105120000 +0000" stop="20240105130000 +0000" channel="uk.sky1">
    <title>Football Preview</title>
    <desc>Build-up to the weekend fixtures.</desc>
  </programme>
  <programme start="20240106000000" channel="uk.bbc1">
    <title>News &amp; Weather</title>
  </programme>
</tv>`

func TestParserRun(t *testing.T) {
	parser := NewParser()

	tv, err := parser.Run([]byte(sampleXMLTV))
	if err != nil {
		t.Fatal(err)
	}

	if len(tv.Channels) != 2 {
		t.Fatalf("Expected 2 channels, got %d", len(tv.Channels))
	}
	if tv.Channels[0].ID != "uk.sky1" {
		t.Errorf("Expected channel id 'uk.sky1', got '%s'", tv.Channels[0].ID)
	}
	if len(tv.Channels[0].DisplayNames) != 2 {
		t.Errorf("Expected 2 display names, got %d", len(tv.Channels[0].DisplayNames))
	}
	if tv.Channels[0].DisplayNames[0] != "Sky Sports Main Event" {
		t.Errorf("Unexpected display name: %s", tv.Channels[0].DisplayNames[0])
	}
	if !strings.Contains(tv.Channels[0].Inner, "<icon") {
		t.Error("Expected channel body to retain icon element verbatim")
	}

	if len(tv.Programmes) != 2 {
		t.Fatalf("Expected 2 programmes, got %d", len(tv.Programmes))
	}
	if tv.Programmes[0].Channel != "uk.sky1" {
		t.Errorf("Expected programme channel 'uk.sky1', got '%s'", tv.Programmes[0].Channel)
	}
	if tv.Programmes[0].Start != "20240105120000 +0000" {
		t.Errorf("Unexpected start attribute: %s", tv.Programmes[0].Start)
	}
	if !strings.Contains(tv.Programmes[0].Inner, "<title>Football Preview</title>") {
		t.Error("Expected programme body to retain title element verbatim")
	}
}

func TestParserRejectsShortContent(t *testing.T) {
	parser := NewParser()

	_, err := parser.Run([]byte("<html>error</html>"))
	if err == nil {
		t.Fatal("Expected error for too-short content")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %T", err)
	}
	if parseErr.Reason != "content too short" {
		t.Errorf("Unexpected reason: %s", parseErr.Reason)
	}
}

func TestParserRejectsMalformedXML(t *testing.T) {
	parser := NewParser()

	broken := strings.Replace(sampleXMLTV, "</tv>", "</tvv>", 1)
	_, err := parser.Run([]byte(broken))
	if err == nil {
		t.Fatal("Expected error for malformed XML")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %T", err)
	}
	if parseErr.Unwrap() == nil {
		t.Error("Expected underlying syntax error to be wrapped")
	}
}

func TestParserNonUTF8Charset(t *testing.T) {
	parser := NewParser()

	// "Télé Sept" with a latin-1 encoded e-acute byte
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>
<tv>
  <channel id="fr.tele7">
    <display-name>T` + "\xe9" + `l` + "\xe9" + ` Sept</display-name>
  </channel>
  <programme start="20240105120000" channel="fr.tele7">
    <title>Journal</title>
  </programme>
</tv>`

	tv, err := parser.Run([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(tv.Channels) != 1 {
		t.Fatalf("Expected 1 channel, got %d", len(tv.Channels))
	}
	if tv.Channels[0].DisplayNames[0] != "Télé Sept" {
		t.Errorf("Expected charset-decoded display name, got '%s'", tv.Channels[0].DisplayNames[0])
	}
}
