package bm25

// termIterator walks the posting list of one query term. Postings are sorted
// by ascending corpus position, so ranking advances each iterator
// monotonically while scanning the candidate set.
type termIterator struct {
	postings []posting
	idx      int
	idf      float64
}

// doc returns the current corpus position. Returns max uint32 if exhausted.
func (it *termIterator) doc() uint32 {
	if it.idx >= len(it.postings) {
		return ^uint32(0)
	}
	return it.postings[it.idx].doc
}

// count returns the term frequency at the current position.
func (it *termIterator) count() uint32 {
	if it.idx >= len(it.postings) {
		return 0
	}
	return it.postings[it.idx].count
}

// advance moves to the first posting with position >= target.
func (it *termIterator) advance(target uint32) {
	for it.doc() < target {
		it.idx++
	}
}
