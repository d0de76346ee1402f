package movies

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsafeLiteral marks a genres payload that contains anything other
	// than plain literal data (anchors, aliases, tags, block collections).
	ErrUnsafeLiteral = eris.New("movies: genres payload is not a plain literal")
	// ErrMalformedGenres marks a payload that is literal data of the wrong shape.
	ErrMalformedGenres = eris.New("movies: malformed genres payload")
)

// Genre is one {id, name} entry of the genres column.
type Genre struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

var literalTags = map[string]bool{
	"!!str":   true,
	"!!int":   true,
	"!!float": true,
	"!!bool":  true,
	"!!null":  true,
	"!!seq":   true,
	"!!map":   true,
}

// ParseGenres decodes a serialized list such as
// "[{'id': 28, 'name': 'Action'}]". Only flow-style sequences, mappings and
// scalars are accepted. Inside single-quoted strings the backslash escapes
// \' and \\ are honoured; other backslashes are kept as written. Every
// entry needs a non-empty name; an id that is not an integer is read as 0.
// An empty cell yields no genres.
func ParseGenres(s string) ([]Genre, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(unescapeSingleQuoted(raw)), &doc); err != nil {
		return nil, eris.Wrapf(ErrMalformedGenres, "%q: %v", abbreviate(raw), err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, eris.Wrapf(ErrMalformedGenres, "%q", abbreviate(raw))
	}
	root := doc.Content[0]
	if err := checkLiteral(root); err != nil {
		return nil, eris.Wrapf(err, "%q", abbreviate(raw))
	}
	if root.Kind != yaml.SequenceNode {
		return nil, eris.Wrapf(ErrMalformedGenres, "%q: want a list", abbreviate(raw))
	}
	out := make([]Genre, 0, len(root.Content))
	for _, item := range root.Content {
		g, err := decodeGenre(item)
		if err != nil {
			return nil, eris.Wrapf(err, "%q", abbreviate(raw))
		}
		out = append(out, g)
	}
	return out, nil
}

func decodeGenre(item *yaml.Node) (Genre, error) {
	if item.Kind != yaml.MappingNode {
		return Genre{}, eris.Wrap(ErrMalformedGenres, "want a list of objects")
	}
	var g Genre
	hasName := false
	for i := 0; i+1 < len(item.Content); i += 2 {
		key, val := item.Content[i], item.Content[i+1]
		switch key.Value {
		case "name":
			if val.Kind != yaml.ScalarNode || val.ShortTag() == "!!null" || strings.TrimSpace(val.Value) == "" {
				return Genre{}, eris.Wrap(ErrMalformedGenres, "empty genre name")
			}
			g.Name, hasName = val.Value, true
		case "id":
			if val.Kind == yaml.ScalarNode {
				if f, err := strconv.ParseFloat(strings.TrimSpace(val.Value), 64); err == nil {
					g.ID = int(f)
				}
			}
		}
	}
	if !hasName {
		return Genre{}, eris.Wrap(ErrMalformedGenres, "genre without name")
	}
	return g, nil
}

// unescapeSingleQuoted rewrites \' and \\ inside single-quoted scalars into
// their YAML forms ('' and \). Double-quoted scalars are left untouched.
func unescapeSingleQuoted(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote == 0:
			if c == '\'' || c == '"' {
				quote = c
			}
		case quote == '"':
			if c == '\\' && i+1 < len(s) {
				b.WriteByte(c)
				i++
				c = s[i]
			} else if c == '"' {
				quote = 0
			}
		case quote == '\'':
			if c == '\\' && i+1 < len(s) && (s[i+1] == '\'' || s[i+1] == '\\') {
				i++
				if s[i] == '\'' {
					b.WriteString("''")
				} else {
					b.WriteByte('\\')
				}
				continue
			}
			if c == '\'' {
				quote = 0
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func checkLiteral(n *yaml.Node) error {
	if n.Kind == yaml.AliasNode || n.Anchor != "" {
		return ErrUnsafeLiteral
	}
	if !literalTags[n.ShortTag()] {
		return eris.Wrapf(ErrUnsafeLiteral, "tag %s", n.Tag)
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return nil
	case yaml.SequenceNode, yaml.MappingNode:
		if n.Style&yaml.FlowStyle == 0 {
			return eris.Wrap(ErrUnsafeLiteral, "block collection")
		}
		for _, c := range n.Content {
			if err := checkLiteral(c); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrUnsafeLiteral
	}
}

// FormatGenres serializes genres back into the list form ParseGenres reads.
func FormatGenres(gs []Genre) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, g := range gs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("{'id': ")
		b.WriteString(strconv.Itoa(g.ID))
		b.WriteString(", 'name': ")
		b.WriteString(quoteName(g.Name))
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String()
}

func quoteName(s string) string {
	if !strings.ContainsRune(s, '\'') {
		return "'" + strings.ReplaceAll(s, `\`, `\\`) + "'"
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

func abbreviate(s string) string {
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}
