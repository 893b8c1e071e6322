package typegraph

import (
	"slices"

	"github.com/usestring/typegen-mcp/pkg/naming"
)

// rewriter rebuilds a type graph bottom-up, substituting classes listed in
// replace and renaming classes listed in rename. All maps are keyed by class
// identity. A class is rewritten at most once; every reference to it ends up
// pointing at the same result, so sharing in the input survives the rewrite.
type rewriter struct {
	replace map[*Class]*Class
	rename  map[*Class]naming.TypeName
	cache   map[*Class]*Class
}

func newRewriter(replace map[*Class]*Class, rename map[*Class]naming.TypeName) *rewriter {
	return &rewriter{
		replace: replace,
		rename:  rename,
		cache:   make(map[*Class]*Class),
	}
}

// typ returns the rewritten type and whether it differs from t.
func (r *rewriter) typ(t Type) (Type, bool) {
	switch t := t.(type) {
	case ClassRef:
		c := r.class(t.Class)
		if c == t.Class {
			return t, false
		}
		return ClassRef{Class: c, IsNullable: t.IsNullable}, true
	case ListOf:
		elem, changed := r.typ(t.Elem)
		if !changed {
			return t, false
		}
		return ListOf{Elem: elem, IsNullable: t.IsNullable}, true
	default:
		return t, false
	}
}

func (r *rewriter) class(c *Class) *Class {
	if target, ok := r.replace[c]; ok {
		c = target
	}
	if done, ok := r.cache[c]; ok {
		return done
	}

	var props []Property
	for i, p := range c.props {
		t, changed := r.typ(p.Type)
		if !changed {
			continue
		}
		if props == nil {
			props = slices.Clone(c.props)
		}
		props[i].Type = t
	}

	name, renamed := r.rename[c]
	if props == nil && !renamed {
		r.cache[c] = c
		return c
	}
	if props == nil {
		props = c.props
	}
	if !renamed {
		name = c.name
	}

	out := NewClass(name, props)
	r.cache[c] = out
	return out
}

// apply rewrites the graph rooted at root.
func (r *rewriter) apply(root Type) Type {
	out, _ := r.typ(root)
	return out
}
