package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// Config describes the Supabase project connection.
type Config struct {
	URL string `split_words:"true" required:"true"`
	Key string `split_words:"true" required:"true"`
}

func (c *Config) New() (*supabase.Client, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if c.Key == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	client, err := supabase.NewClient(c.URL, c.Key, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return client, nil
}
