package mock

import "github.com/fwojciec/scam"

var _ scam.Converter = (*Converter)(nil)

// Converter is a mock implementation of scam.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
