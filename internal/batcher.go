package internal

type Batcher struct {
	// each nested batch increases the depth by 1
	// while depth > 0, marked nodes wait until the outermost batch is complete
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Batch runs fn and calls onComplete when the outermost batch returns.
// onComplete is skipped while a panic unwinds out of fn.
func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	returned := false
	defer func() {
		b.depth--
		if returned && b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
	returned = true
}
