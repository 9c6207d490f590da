package schema

// Clone returns a deep copy of the schema. The element tree and data-node
// list are copied; DataNode values are shared since they are never mutated
// after extraction.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Root = s.Root.Clone()
	if s.DataNodes != nil {
		out.DataNodes = make([]DataNode, len(s.DataNodes))
		copy(out.DataNodes, s.DataNodes)
	}
	return &out
}

// Clone returns a deep copy of the element and its entire subtree.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := *e
	if e.Properties != nil {
		out.Properties = make(map[string]*Element, len(e.Properties))
		for name, prop := range e.Properties {
			out.Properties[name] = prop.Clone()
		}
	}
	if e.Attributes != nil {
		out.Attributes = make(map[string]*Attribute, len(e.Attributes))
		for name, attr := range e.Attributes {
			out.Attributes[name] = attr.Clone()
		}
	}
	out.ArrayType = e.ArrayType.Clone()
	if e.MinValue != nil {
		v := *e.MinValue
		out.MinValue = &v
	}
	if e.MaxValue != nil {
		v := *e.MaxValue
		out.MaxValue = &v
	}
	if e.MinLength != nil {
		v := *e.MinLength
		out.MinLength = &v
	}
	if e.MaxLength != nil {
		v := *e.MaxLength
		out.MaxLength = &v
	}
	if e.Examples != nil {
		out.Examples = make([]any, len(e.Examples))
		copy(out.Examples, e.Examples)
	}
	return &out
}

// Clone returns a copy of the attribute.
func (a *Attribute) Clone() *Attribute {
	if a == nil {
		return nil
	}
	out := *a
	return &out
}
