package manifest

import (
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
)

// layout records what the decoded tree forgets: the order in which keys
// appear in each table and where each string value sits in the source.
type layout struct {
	order   map[string][]string
	seen    map[string]bool
	strings map[string]unstable.Range
}

// pathKey joins a key path into a map key. NUL cannot appear in a TOML key
// without escaping, and escaped keys are compared by their decoded form.
func pathKey(path []string) string {
	return strings.Join(path, "\x00")
}

// scanLayout walks every top-level expression of data with the go-toml AST
// parser. Keys under array tables are not addressable by a plain path and
// are recorded only up to the array itself.
func scanLayout(data []byte) (*layout, error) {
	l := &layout{
		order:   make(map[string][]string),
		seen:    make(map[string]bool),
		strings: make(map[string]unstable.Range),
	}

	var p unstable.Parser
	p.Reset(data)

	var prefix []string
	inArray := false

	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table:
			it := expr.Key()
			prefix = keyParts(&it)
			inArray = false
			l.visit(prefix)
		case unstable.ArrayTable:
			it := expr.Key()
			l.visit(keyParts(&it))
			prefix = nil
			inArray = true
		case unstable.KeyValue:
			if inArray {
				continue
			}
			l.keyValue(prefix, expr)
		}
	}

	if err := p.Error(); err != nil {
		return nil, err
	}
	return l, nil
}

// visit records each segment of path in its parent's key order.
func (l *layout) visit(path []string) {
	for i := range path {
		full := pathKey(path[:i+1])
		if l.seen[full] {
			continue
		}
		l.seen[full] = true
		parent := pathKey(path[:i])
		l.order[parent] = append(l.order[parent], path[i])
	}
}

func (l *layout) keyValue(prefix []string, kv *unstable.Node) {
	it := kv.Key()
	path := append(append([]string(nil), prefix...), keyParts(&it)...)
	l.visit(path)

	value := kv.Value()
	switch value.Kind {
	case unstable.String:
		l.strings[pathKey(path)] = value.Raw
	case unstable.InlineTable:
		children := value.Children()
		for children.Next() {
			l.keyValue(path, children.Node())
		}
	}
}

// keys returns the keys of the table at path in document order.
func (l *layout) keys(path []string) []string {
	return l.order[pathKey(path)]
}

// stringAt returns the source range of the string value at path.
func (l *layout) stringAt(path []string) (unstable.Range, bool) {
	r, ok := l.strings[pathKey(path)]
	return r, ok
}

// keyParts copies the key segments out of the parser's buffers, which are
// reused by the next expression.
func keyParts(it *unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
