package schema

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies a normalized document onto out, matching keys against json
// struct tags.
func Decode(doc Document, out any) error {
	return DecodeTag(doc, out, "json")
}

// DecodeTag is Decode matching keys against the named struct tag.
func DecodeTag(doc Document, out any, tag string) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    tag,
		Result:     out,
		ZeroFields: true,
	})
	if err != nil {
		return fmt.Errorf("schema: build decoder: %w", err)
	}
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("schema: decode document: %w", err)
	}
	return nil
}
