// Package models defines the domain types for arbor.
package models

// Well-known record columns, in their preferred storage order.
const (
	ColumnName     = "name"
	ColumnFilePath = "file_path"
	ColumnParent   = "parent"
	ColumnStatus   = "status"
	ColumnCategory = "category"
)

// PreferredColumns is the fixed leading column order of the tabular storage.
var PreferredColumns = []string{ColumnName, ColumnFilePath, ColumnParent, ColumnStatus, ColumnCategory}

// Record is the extracted metadata of one vault document.
type Record struct {
	Name     string            `json:"name"`
	FilePath string            `json:"file_path"`
	Parent   string            `json:"parent,omitempty"`
	Status   string            `json:"status,omitempty"`
	Category string            `json:"category,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// Get returns the value of column for r. ok is false when the column is
// neither a well-known column nor one of r's extra fields.
func (r Record) Get(column string) (value string, ok bool) {
	switch column {
	case ColumnName:
		return r.Name, true
	case ColumnFilePath:
		return r.FilePath, true
	case ColumnParent:
		return r.Parent, true
	case ColumnStatus:
		return r.Status, true
	case ColumnCategory:
		return r.Category, true
	}
	v, ok := r.Extra[column]
	return v, ok
}

// Set assigns value to column, storing unknown columns in Extra.
func (r *Record) Set(column, value string) {
	switch column {
	case ColumnName:
		r.Name = value
	case ColumnFilePath:
		r.FilePath = value
	case ColumnParent:
		r.Parent = value
	case ColumnStatus:
		r.Status = value
	case ColumnCategory:
		r.Category = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[column] = value
	}
}

// Fields returns every non-empty column of r.
func (r Record) Fields() map[string]string {
	out := make(map[string]string, len(PreferredColumns)+len(r.Extra))
	for _, col := range PreferredColumns {
		if v, _ := r.Get(col); v != "" {
			out[col] = v
		}
	}
	for k, v := range r.Extra {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Node is one element of a display tree.
type Node struct {
	Name     string  `json:"name"`
	Children []*Node `json:"children,omitempty"`
}

// Size returns the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += c.Size()
	}
	return count
}
