package repository

// Page is the LIMIT/OFFSET window a listing query executes.
type Page struct {
	Limit  int
	Offset int
}

// PageResult is one window of rows plus the size of the whole result set.
// Items and Total are read from the same snapshot (TxManager.WithinSnapshot).
type PageResult[T any] struct {
	Items []T
	Total int
}

// EmptyResult returns a result whose Items marshal as [] rather than null.
func EmptyResult[T any]() PageResult[T] {
	return PageResult[T]{Items: []T{}}
}

// Past reports whether the window starts at or after the last row.
func (r PageResult[T]) Past(offset int) bool {
	return offset >= r.Total
}
