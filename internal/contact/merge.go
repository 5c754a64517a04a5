package contact

// Merge folds incoming into target. Every field of target becomes the
// consolidated union of both sides; target keeps its ID. The caller should
// discard incoming afterwards.
func Merge(target, incoming *Record) {
	if target == nil || incoming == nil {
		return
	}
	for _, f := range Fields() {
		mine, theirs := target.Values(f), incoming.Values(f)
		if len(mine) == 0 && len(theirs) == 0 {
			continue
		}
		target.Set(f, Consolidate(mine, theirs))
	}
}
