package mock

import "github.com/MelvilleC99/profiler"

var _ profiler.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of profiler.Cleaner.
type Cleaner struct {
	CleanFn  func(html string) (string, error)
	EmailsFn func(html string) []string
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}

func (c *Cleaner) Emails(html string) []string {
	if c.EmailsFn == nil {
		return nil
	}
	return c.EmailsFn(html)
}
