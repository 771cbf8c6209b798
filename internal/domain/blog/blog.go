package blog

import "errors"

var ErrNotFound = errors.New("blog not found")

// Document is a schemaless blog entry. Blogs carry no domain invariants
// beyond existence; the store assigns the identifier.
type Document = map[string]any
