package graphql

import (
	"context"
	"fmt"
	"sync"
)

// Pager drives cursor paging in GraphQL with thread safety. Configuration
// is immutable after creation; only the cursor state is guarded.
type Pager struct {
	// Immutable configuration
	client      *Client
	query       string
	cursorVar   string
	cursorPath  []string
	hasNextPath []string
	opts        []Option

	// Mutable state (protected by mutex)
	mu      sync.RWMutex
	cursor  string
	hasNext bool
	first   bool
}

// NewPager returns a Pager for GraphQL cursor paging. cursorVar is the
// variable the end cursor is fed back through; cursorPath and hasNextPath
// are key paths into the data payload (e.g. "repository", "issues",
// "pageInfo", "endCursor"). Does NOT execute any requests during creation.
func NewPager(
	client *Client,
	query string,
	cursorVar string,
	cursorPath, hasNextPath []string,
	opts ...Option,
) (*Pager, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if cursorVar == "" {
		return nil, fmt.Errorf("cursorVar cannot be empty")
	}
	if len(cursorPath) == 0 {
		return nil, fmt.Errorf("cursorPath cannot be empty")
	}
	if len(hasNextPath) == 0 {
		return nil, fmt.Errorf("hasNextPath cannot be empty")
	}

	return &Pager{
		client:      client,
		query:       query,
		cursorVar:   cursorVar,
		cursorPath:  cursorPath,
		hasNextPath: hasNextPath,
		opts:        opts,
		hasNext:     true,
		first:       true,
	}, nil
}

// NextPage fetches the next data payload, or returns (nil, nil) when done.
func (p *Pager) NextPage(ctx context.Context) (map[string]any, error) {
	p.mu.RLock()
	hasNext := p.hasNext
	first := p.first
	cursor := p.cursor
	p.mu.RUnlock()

	if !first && !hasNext {
		return nil, nil
	}

	opts := append([]Option{}, p.opts...)
	if cursor != "" {
		opts = append(opts, WithVariable(p.cursorVar, cursor))
	}

	data, err := p.client.Query(ctx, p.query, opts...)
	if err != nil {
		return nil, err
	}

	p.updateState(data)
	return data, nil
}

// updateState reads the cursor fields out of a page and advances.
func (p *Pager) updateState(data map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.first = false

	if cursor, ok := traverse(data, p.cursorPath...).(string); ok && cursor != "" {
		p.cursor = cursor
	}

	if hasNext, ok := traverse(data, p.hasNextPath...).(bool); ok {
		p.hasNext = hasNext
	} else {
		// If we can't determine hasNext, assume no more pages
		p.hasNext = false
	}
}

// HasMore returns whether more pages are available (thread-safe).
func (p *Pager) HasMore() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.first || p.hasNext
}

// Reset resets pagination to start from the beginning.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cursor = ""
	p.hasNext = true
	p.first = true
}

// traverse digs into nested maps via a path of keys.
func traverse(m map[string]any, path ...string) any {
	cur := any(m)
	for _, key := range path {
		if mp, ok := cur.(map[string]any); ok {
			cur = mp[key]
		} else {
			return nil
		}
	}
	return cur
}
