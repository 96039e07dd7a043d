package group

// Find walks from start toward the root and returns the first node whose
// label m matches. The walk includes start itself.
func Find(start *Node, m Matcher) (Identity, bool) {
	for n := start; n != nil; n = n.Parent {
		id, ok := m.Match(n.Label())
		if ok {
			id.Node = n

			return id, true
		}
	}

	return Identity{}, false
}

// FindAction resolves the action group enclosing start.
func FindAction(start *Node) (Identity, bool) {
	return Find(start, Action)
}

// FindResource resolves the resource group enclosing an action. The search
// begins at the action's own node.
func FindResource(action Identity) (Identity, bool) {
	return Find(action.Node, Resource)
}
