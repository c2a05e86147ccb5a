package util

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Calculate normalizes a 1-indexed page and a page size into an SQL
// offset/limit pair.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return (page - 1) * size, size
}

// Pages is ceil(total/limit).
func Pages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
