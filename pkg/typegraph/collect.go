package typegraph

// Collect returns every class reachable from root in depth-first pre-order.
// Each class appears once even when it is referenced from several places.
func Collect(root Type) []*Class {
	var classes []*Class
	seen := make(map[*Class]struct{})

	var walk func(t Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case ClassRef:
			if _, ok := seen[t.Class]; ok {
				return
			}
			seen[t.Class] = struct{}{}
			classes = append(classes, t.Class)
			for _, p := range t.Class.Properties() {
				walk(p.Type)
			}
		case ListOf:
			walk(t.Elem)
		}
	}

	walk(root)
	return classes
}
