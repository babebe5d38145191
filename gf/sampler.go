package gf

import (
	"github.com/Pro7ech/antt/utils/sampling"
)

// UniformSampler wraps a [sampling.Source] and represents the state of a
// sampler of uniform field elements.
type UniformSampler struct {
	*sampling.Source
	field *Field
}

// NewUniformSampler creates a new instance of UniformSampler from a
// [sampling.Source] and a [Field].
func NewUniformSampler(source *sampling.Source, field *Field) (u *UniformSampler) {
	return &UniformSampler{Source: source, field: field}
}

// WithSource returns an instance of the receiver with a new
// [sampling.Source]. It can be used concurrently with the original sampler.
func (u UniformSampler) WithSource(source *sampling.Source) *UniformSampler {
	return &UniformSampler{Source: source, field: u.field}
}

// Read overwrites p with uniform field elements.
// The field cardinality is a power of two, so masking the source output
// is already uniform and no rejection step is needed.
func (u *UniformSampler) Read(p []Element) {
	mask := u.field.Mask()
	for i := range p {
		p[i] = Element(u.Uint64() & mask)
	}
}

// ReadNew samples a new vector of n uniform field elements.
func (u *UniformSampler) ReadNew(n int) (p []Element) {
	p = make([]Element, n)
	u.Read(p)
	return
}
