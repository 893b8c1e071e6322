package typegraph

import "github.com/usestring/typegen-mcp/pkg/naming"

// Normalize deduplicates and disambiguates the graph rooted at root.
// reserved lists names the output must not declare; it may be nil.
// Normalizing the result again with its RootName changes nothing.
func Normalize(root Type, rootName naming.TypeName, reserved naming.Set[naming.TypeName]) *Graph {
	root = Deduplicate(root, Collect(root))
	root, rootName = Disambiguate(root, Collect(root), rootName, reserved)
	return &Graph{
		RootName: rootName,
		Root:     root,
		Classes:  Collect(root),
	}
}

// Deduplicate merges structurally equal classes. Within each group of classes
// sharing a name, the first class of every equality subgroup is kept and all
// references to the other members are redirected to it.
func Deduplicate(root Type, classes []*Class) Type {
	names, byName := groupByName(classes)

	replace := make(map[*Class]*Class)
	for _, name := range names {
		group := byName[name]
		if len(group) < 2 {
			continue
		}
		buckets := make(map[uint64][]*Class)
	members:
		for _, c := range group {
			for _, rep := range buckets[c.Hash()] {
				if Equal(rep, c) {
					replace[c] = rep
					continue members
				}
			}
			buckets[c.Hash()] = append(buckets[c.Hash()], c)
		}
	}

	if len(replace) == 0 {
		return root
	}
	return newRewriter(replace, nil).apply(root)
}

// Disambiguate renames classes so that every class name is unique and none
// is in reserved. It returns the rewritten root and the resolved root name.
//
// The root name is claimed first. If it is reserved, a fresh name derived from
// it is used instead. A root class takes the root name; any other class using
// it is renamed, which frees the name for an alias when the root is not a
// class. In every other group of same-named classes the first member keeps
// the name and the rest get numeric suffixes, unless the name is reserved, in
// which case every member is renamed.
func Disambiguate(root Type, classes []*Class, rootName naming.TypeName, reserved naming.Set[naming.TypeName]) (Type, naming.TypeName) {
	taken := naming.NewSet[naming.TypeName]()
	for _, c := range classes {
		taken.Add(c.Name())
	}
	for name := range reserved {
		taken.Add(name)
	}

	if reserved.Has(rootName) {
		rootName = naming.Unique(rootName, taken)
	} else {
		taken.Add(rootName)
	}

	rename := make(map[*Class]naming.TypeName)
	var rootClass *Class
	if ref, ok := root.(ClassRef); ok {
		rootClass = ref.Class
		if rootClass.Name() != rootName {
			rename[rootClass] = rootName
		}
	}

	names, byName := groupByName(classes)
	for _, c := range byName[rootName] {
		if c != rootClass {
			rename[c] = naming.Unique(c.Name(), taken)
		}
	}

	for _, name := range names {
		if name == rootName {
			continue
		}
		group := make([]*Class, 0, len(byName[name]))
		for _, c := range byName[name] {
			if c != rootClass {
				group = append(group, c)
			}
		}

		switch {
		case reserved.Has(name):
			for _, c := range group {
				rename[c] = naming.Unique(name, taken)
			}
		case len(group) > 1:
			taken.Remove(name)
			for _, c := range group {
				if n := naming.Unique(name, taken); n != name {
					rename[c] = n
				}
			}
		}
	}

	if len(rename) == 0 {
		return root, rootName
	}
	return newRewriter(nil, rename).apply(root), rootName
}

func groupByName(classes []*Class) ([]naming.TypeName, map[naming.TypeName][]*Class) {
	var names []naming.TypeName
	byName := make(map[naming.TypeName][]*Class)
	for _, c := range classes {
		if _, ok := byName[c.Name()]; !ok {
			names = append(names, c.Name())
		}
		byName[c.Name()] = append(byName[c.Name()], c)
	}
	return names, byName
}
