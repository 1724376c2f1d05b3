package metadata

/**
 * @brief GPU-side geometry. Immutable once created: a VAO of 0 means
 * creation failed and the mesh draws nothing.
 */
type Mesh struct {
	Name string

	VAO uint32
	VBO uint32
	IBO uint32

	VerticesNB uint32
	IndicesNB  uint32

	/** @brief Default texture bindings keyed by sampler name. */
	Bindings map[string]TextureBinding
}

// Ready reports whether the mesh can be drawn.
func (m *Mesh) Ready() bool {
	return m != nil && m.VAO != 0 && m.IndicesNB > 0
}

// WithTextures returns a copy of m carrying the extra bindings. The receiver
// is not modified.
func (m *Mesh) WithTextures(bindings ...NamedBinding) *Mesh {
	out := *m
	out.Bindings = make(map[string]TextureBinding, len(m.Bindings)+len(bindings))
	for name, b := range m.Bindings {
		out.Bindings[name] = b
	}
	for _, nb := range bindings {
		out.Bindings[nb.Name] = nb.Binding
	}
	return &out
}
