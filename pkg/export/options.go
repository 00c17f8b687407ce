package export

// Quoting selects how fields that contain special characters are written.
type Quoting int

const (
	// QuoteMinimal wraps fields that need it in double quotes and doubles
	// embedded quotes.
	QuoteMinimal Quoting = iota
	// QuoteNone never quotes; the escape character precedes every delimiter,
	// quote, escape character and line break inside a field.
	QuoteNone
)

const (
	defaultDelimiter  = ','
	defaultEscapeChar = '\\'
)

type Options struct {
	Delimiter  rune
	UseCRLF    bool
	Index      bool
	Quoting    Quoting
	EscapeChar rune
}

type Option func(*Options)

func WithDelimiter(r rune) Option {
	return func(o *Options) {
		o.Delimiter = r
	}
}

func WithCRLF(crlf bool) Option {
	return func(o *Options) {
		o.UseCRLF = crlf
	}
}

// WithIndex emits the row labels as leading fields of every record.
func WithIndex(index bool) Option {
	return func(o *Options) {
		o.Index = index
	}
}

func WithQuoting(q Quoting) Option {
	return func(o *Options) {
		o.Quoting = q
	}
}

func WithEscapeChar(r rune) Option {
	return func(o *Options) {
		o.EscapeChar = r
	}
}

func newOptions(f Format, opts []Option) *Options {
	o := &Options{
		Delimiter:  defaultDelimiter,
		EscapeChar: defaultEscapeChar,
	}
	if f == TSV {
		o.Delimiter = '\t'
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
