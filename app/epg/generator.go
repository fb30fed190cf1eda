package epg

import (
	"bytes"
	"encoding/xml"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run serializes a merged document to XML-declared UTF-8 text. Channel and
// programme bodies captured at parse time are emitted verbatim; channels
// synthesized without a body fall back to their display names.
func (g *Generator) Run(tv *TV) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<tv generator-info-name="`)
	escapeAttr(&buf, tv.Generator)
	buf.WriteString(`" generator-info-url="`)
	escapeAttr(&buf, tv.GeneratorURL)
	buf.WriteString("\">\n")

	for _, channel := range tv.Channels {
		g.writeChannel(&buf, channel)
	}
	for _, programme := range tv.Programmes {
		g.writeProgramme(&buf, programme)
	}

	buf.WriteString("</tv>\n")

	return buf.String(), nil
}

func (g *Generator) writeChannel(buf *bytes.Buffer, channel Channel) {
	buf.WriteString(`  <channel id="`)
	escapeAttr(buf, channel.ID)
	buf.WriteString(`">`)

	if channel.Inner != "" {
		buf.WriteString(channel.Inner)
	} else {
		for _, name := range channel.DisplayNames {
			buf.WriteString("<display-name>")
			xml.EscapeText(buf, []byte(name))
			buf.WriteString("</display-name>")
		}
	}

	buf.WriteString("</channel>\n")
}

func (g *Generator) writeProgramme(buf *bytes.Buffer, programme Programme) {
	buf.WriteString(`  <programme start="`)
	escapeAttr(buf, programme.Start)
	buf.WriteString(`"`)

	if programme.Stop != "" {
		buf.WriteString(` stop="`)
		escapeAttr(buf, programme.Stop)
		buf.WriteString(`"`)
	}

	buf.WriteString(` channel="`)
	escapeAttr(buf, programme.Channel)
	buf.WriteString(`">`)
	buf.WriteString(programme.Inner)
	buf.WriteString("</programme>\n")
}

func escapeAttr(buf *bytes.Buffer, value string) {
	// xml.EscapeText also escapes quotes, which is what attribute values need
	xml.EscapeText(buf, []byte(value))
}
