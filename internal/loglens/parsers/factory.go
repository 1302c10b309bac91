package parsers

import (
	"fmt"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// NewParser returns a Parser for the given format tag. FormatUnknown has no
// line parser; use ParseUnknown instead.
func (f *Factory) NewParser(format Format, opts ParserOptions) (Parser, error) {
	switch format {
	case FormatApache:
		return NewApacheParser(opts), nil
	case FormatJSON:
		return NewJSONLinesParser(opts), nil
	case FormatW3C, FormatIIS:
		return NewW3CParser(opts), nil
	case FormatSyslog:
		return NewSyslogParser(opts), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}
