package sexy

import "fmt"

// Match reports whether actual has the shape described by pattern. An
// ellipsis on its own matches any datum; inside a list it matches any run of
// items, including none. The error names the first path that differs.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s", path, pattern.Type, pattern, actual.Type, actual)
	}
	if pattern.Type != NodeList {
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	}
	return matchItems(pattern.Items, actual.Items, path, 0)
}

// matchItems matches patterns against items. items[0] is element offset of
// the enclosing list.
func matchItems(patterns, items []*Node, path string, offset int) error {
	for i, p := range patterns {
		if p.Type == NodeEllipsis {
			rest := patterns[i+1:]
			if len(rest) == 0 {
				return nil
			}
			var firstErr error
			for skip := i; skip <= len(items); skip++ {
				err := matchItems(rest, items[skip:], path, offset+skip)
				if err == nil {
					return nil
				}
				if firstErr == nil {
					firstErr = err
				}
			}
			return firstErr
		}
		if i >= len(items) {
			return fmt.Errorf("at %s: expected %s at index %d, got end of list", path, p, offset+i)
		}
		if err := match(p, items[i], fmt.Sprintf("%s[%d]", path, offset+i)); err != nil {
			return err
		}
	}
	if len(items) > len(patterns) {
		return fmt.Errorf("at %s: unexpected %s at index %d", path, items[len(patterns)], offset+len(patterns))
	}
	return nil
}
