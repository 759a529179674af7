package pipeline

import (
	"context"
)

// Document is an input to batch processing.
type Document struct {
	ID   string
	Text string
}

// Outcome is the result of processing one document of a batch.
type Outcome struct {
	ID     string
	Result *Result
	Err    error
}

// Promise delivers the outcome of a document processed in the background.
type Promise struct {
	await func(ctx context.Context) Outcome
}

// Await blocks until the document is done or ctx is cancelled. It may be
// called any number of times.
func (p Promise) Await(ctx context.Context) Outcome {
	return p.await(ctx)
}

// Start processes a document in the background.
func Start(doc Document, opts *Options) Promise {
	var outcome Outcome
	done := make(chan struct{})
	go func() {
		defer close(done)
		r, err := Process(doc.Text, doc.ID, opts)
		outcome = Outcome{ID: doc.ID, Result: r, Err: err}
	}()
	return Promise{
		await: func(ctx context.Context) Outcome {
			select {
			case <-ctx.Done():
				return Outcome{ID: doc.ID, Err: ctx.Err()}
			case <-done:
				return outcome
			}
		},
	}
}

// ProcessAll processes independent documents concurrently. Outcomes are
// returned in input order; a failing document does not affect the others.
// Options are shared and must not be modified while running.
func ProcessAll(ctx context.Context, docs []Document, opts *Options) []Outcome {
	promises := make([]Promise, len(docs))
	for i, doc := range docs {
		promises[i] = Start(doc, opts)
	}
	outcomes := make([]Outcome, len(docs))
	for i, p := range promises {
		outcomes[i] = p.Await(ctx)
	}
	return outcomes
}
