package source

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/cristianoliveira/form-intray/internal/submission"
	"github.com/google/uuid"
)

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Margaret", "Ken", "Radia", "Linus"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Hamilton", "Thompson", "Perlman", "Torvalds"}
)

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	// Interval between submissions. Defaults to 4s.
	Interval time.Duration
	// TickChan replaces the internal ticker when set, mainly for tests.
	TickChan <-chan time.Time
	// NewID returns submission IDs. Defaults to uuid.NewString.
	NewID func() string
	// Rand picks names. Defaults to a time-seeded PCG.
	Rand *rand.Rand
}

// Generator publishes randomly generated submissions into a Feed, standing in for a
// real form backend.
type Generator struct {
	feed *Feed
	opts GeneratorOptions
}

// NewGenerator creates a generator publishing into feed.
func NewGenerator(feed *Feed, opts GeneratorOptions) *Generator {
	if opts.Interval <= 0 {
		opts.Interval = 4 * time.Second
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Generator{feed: feed, opts: opts}
}

// Next builds one random submission.
func (g *Generator) Next() submission.Submission {
	first := firstNames[g.opts.Rand.IntN(len(firstNames))]
	last := lastNames[g.opts.Rand.IntN(len(lastNames))]
	email := fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last))
	return submission.New(g.opts.NewID(), submission.Data{
		submission.FieldFirstName: first,
		submission.FieldLastName:  last,
		submission.FieldEmail:     email,
	})
}

// Run publishes one submission per tick until ctx is cancelled or the tick channel closes.
func (g *Generator) Run(ctx context.Context) error {
	tickChan := g.opts.TickChan
	if tickChan == nil {
		ticker := time.NewTicker(g.opts.Interval)
		defer ticker.Stop()
		tickChan = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-tickChan:
			if !ok {
				return nil
			}
			g.feed.Publish(g.Next())
		}
	}
}
