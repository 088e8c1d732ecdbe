package domain

func boolPtr(b bool) *bool { return &b }

// tree links parents below root and returns it
func tree(root *Node) *Node {
	for _, child := range root.Children {
		child.Parent = root
		tree(child)
	}
	return root
}

func frame(id string, children ...*Node) *Node {
	return &Node{ID: id, Name: id, Type: NodeTypeFrame, Children: children}
}

func instance(id string, mc *Component, children ...*Node) *Node {
	return &Node{ID: id, Name: id, Type: NodeTypeInstance, MainComponent: mc, Children: children}
}

func remote(key string) *Component {
	return &Component{ID: "c-" + key, Key: key, Name: key, Remote: true}
}

func local(name string) *Component {
	return &Component{ID: "c-" + name, Name: name}
}

func solid(r, g, b float64) Paint {
	return Paint{Type: "SOLID", Color: &Color{R: r, G: g, B: b, A: 1}}
}

func fills(items ...Paint) *Paints {
	return &Paints{Items: items}
}

func mapping(keys map[string]string) LibraryNameResolver {
	return func(key string) (string, bool) {
		name, ok := keys[key]
		return name, ok
	}
}
