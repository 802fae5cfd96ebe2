package search

// NamingMode selects the search name documents are keyed and scored by.
type NamingMode int

const (
	// FilenameOnly keys documents by their base name.
	FilenameOnly NamingMode = iota
	// FullPath keys documents by relative directory and name.
	FullPath
)

func (m NamingMode) String() string {
	switch m {
	case FilenameOnly:
		return "filename"
	case FullPath:
		return "fullpath"
	default:
		return "unknown"
	}
}

// Document is a scored file for the duration of one query.
type Document struct {
	Score float64 // Sum of the contributions of every query term.
	Path  string  // Relative directory and name, whatever the naming mode.
}

// Corpus maps search names to documents.
//
// Two entries with the same search name collide: the later one replaces the
// earlier document, and the name keeps the position of its first insertion.
type Corpus struct {
	names []string
	docs  map[string]*Document
}

// SearchName returns the key of e under mode.
func SearchName(e Entry, mode NamingMode) string {
	if mode == FullPath {
		return e.Path()
	}
	return e.Name
}

// LoadCorpus builds a document with a zero score for every entry.
func LoadCorpus(entries []Entry, mode NamingMode) *Corpus {
	c := &Corpus{
		names: make([]string, 0, len(entries)),
		docs:  make(map[string]*Document, len(entries)),
	}
	for _, e := range entries {
		name := SearchName(e, mode)
		if _, ok := c.docs[name]; !ok {
			c.names = append(c.names, name)
		}
		c.docs[name] = &Document{Score: 0, Path: e.Path()}
	}
	return c
}

// Len returns the number of distinct search names.
func (c *Corpus) Len() int {
	return len(c.names)
}

// Get returns the document stored under name.
func (c *Corpus) Get(name string) (*Document, bool) {
	doc, ok := c.docs[name]
	return doc, ok
}

// Names returns the search names in first-insertion order.
func (c *Corpus) Names() []string {
	return c.names
}

// Apply adds every delta to the score of the document with the same name.
// Unknown names are ignored.
func (c *Corpus) Apply(deltas map[string]float64) {
	for name, delta := range deltas {
		if doc, ok := c.docs[name]; ok {
			doc.Score += delta
		}
	}
}
