package content

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is a content entity carrying an asset reference column.
type Kind struct {
	// Name identifies the kind in errors and logs.
	Name string
	// Table is the table holding the rows.
	Table string
	// Column is the column holding the asset URL or path.
	Column string
}

// Known content kinds. Rows are read regardless of their published flag.
var (
	BlogPosts      = Kind{Name: "blog_posts", Table: "blog_posts", Column: "image_url"}
	PortfolioItems = Kind{Name: "portfolio_items", Table: "portfolio_items", Column: "image_url"}
	Services       = Kind{Name: "services", Table: "services", Column: "image_url"}
	Testimonials   = Kind{Name: "testimonials", Table: "testimonials", Column: "image_url"}
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// KnownKinds returns the built-in kinds by name.
func KnownKinds() map[string]Kind {
	return map[string]Kind{
		BlogPosts.Name:      BlogPosts,
		PortfolioItems.Name: PortfolioItems,
		Services.Name:       Services,
		Testimonials.Name:   Testimonials,
	}
}

// ParseKinds resolves kind specs. A spec is either a known kind name or
// "name=table.column" for a custom mapping.
func ParseKinds(specs []string) ([]Kind, error) {
	known := KnownKinds()
	kinds := make([]Kind, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))

	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		var kind Kind
		if name, target, ok := strings.Cut(spec, "="); ok {
			table, column, ok := strings.Cut(target, ".")
			if !ok {
				return nil, fmt.Errorf("content kind %q: expected name=table.column", spec)
			}
			kind = Kind{
				Name:   strings.TrimSpace(name),
				Table:  strings.TrimSpace(table),
				Column: strings.TrimSpace(column),
			}
		} else {
			k, ok := known[spec]
			if !ok {
				return nil, fmt.Errorf("unknown content kind %q", spec)
			}
			kind = k
		}

		if err := kind.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[kind.Name]; dup {
			return nil, fmt.Errorf("content kind %q configured twice", kind.Name)
		}
		seen[kind.Name] = struct{}{}
		kinds = append(kinds, kind)
	}

	if len(kinds) == 0 {
		return nil, fmt.Errorf("no content kinds configured")
	}
	return kinds, nil
}

func (k Kind) validate() error {
	for _, part := range []string{k.Name, k.Table, k.Column} {
		if !identifier.MatchString(part) {
			return fmt.Errorf("content kind %q: invalid identifier %q", k.Name, part)
		}
	}
	return nil
}
