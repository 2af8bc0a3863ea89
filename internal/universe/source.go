package universe

// ListingSource provides the raw ticker symbols listed on one exchange.
type ListingSource interface {
	Symbols() ([]string, error)
	Name() string
}
