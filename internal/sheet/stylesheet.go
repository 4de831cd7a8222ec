package sheet

// Declarations maps property names to raw value strings. Duplicate
// properties within one block are last write wins.
type Declarations map[string]string

// Stylesheet is an ordered mapping from selector string to declarations.
// Re-declaring a selector replaces its whole declaration mapping while
// keeping its original position in the order.
type Stylesheet struct {
	selectors []string
	rules     map[string]Declarations
}

func NewStylesheet() *Stylesheet {
	return &Stylesheet{
		rules: make(map[string]Declarations),
	}
}

func (s *Stylesheet) Set(selector string, decls Declarations) {
	if _, ok := s.rules[selector]; !ok {
		s.selectors = append(s.selectors, selector)
	}

	s.rules[selector] = decls
}

func (s *Stylesheet) Get(selector string) (Declarations, bool) {
	decls, ok := s.rules[selector]
	return decls, ok
}

// Selectors returns every selector in declaration order.
func (s *Stylesheet) Selectors() []string {
	return s.selectors
}

func (s *Stylesheet) Len() int {
	return len(s.selectors)
}
