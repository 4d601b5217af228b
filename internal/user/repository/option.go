package repository

// ListOptions contains filtering options for user queries.
type ListOptions struct {
	IDs []string
}
