package apiclient

import (
	"net/url"
	"strconv"
	"time"
)

// DateLayout is the wire format for date-only query parameters.
const DateLayout = "2006-01-02"

// Params builds a query string from optional filter fields. Nil pointers and
// empty strings are omitted entirely rather than sent as empty parameters.
type Params struct {
	values url.Values
}

func NewParams() *Params {
	return &Params{values: url.Values{}}
}

func (p *Params) Int(key string, v *int) *Params {
	if v != nil {
		p.values.Set(key, strconv.Itoa(*v))
	}
	return p
}

func (p *Params) String(key string, v *string) *Params {
	if v != nil && *v != "" {
		p.values.Set(key, *v)
	}
	return p
}

func (p *Params) Date(key string, v *time.Time) *Params {
	if v != nil && !v.IsZero() {
		p.values.Set(key, v.Format(DateLayout))
	}
	return p
}

// Values returns nil when no parameter was set.
func (p *Params) Values() url.Values {
	if len(p.values) == 0 {
		return nil
	}
	return p.values
}
