package domain

// Described pairs a raw schema descriptor with the domain compiled from it.
// The raw value is never modified.
type Described[T any] struct {
	Raw    T
	Domain *Domain
}

// Describe compiles desc and attaches the result to raw.
func Describe[T any](f *Factory, raw T, desc Descriptor, opts Options) (Described[T], error) {
	d, err := f.FromType(desc, opts)
	if err != nil {
		return Described[T]{Raw: raw}, err
	}
	return Described[T]{Raw: raw, Domain: d}, nil
}
