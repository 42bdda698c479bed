package posts

// Config tunes the posts domain.
type Config struct {
	// RecentLimit caps how many prior posts feed the duplication check.
	RecentLimit int
	// ListLimit caps page size on post listings.
	ListLimit int
}

func (c Config) withDefaults() Config {
	if c.RecentLimit <= 0 {
		c.RecentLimit = 10
	}
	if c.ListLimit <= 0 {
		c.ListLimit = 50
	}
	return c
}
