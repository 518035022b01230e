// Package object defines the entity populations of the playfield and the
// per-tick movement and despawn rule of each.
package object

// Field is the playfield every entity lives in.
type Field struct {
	Width  float64
	Height float64
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Field Field
}

// Updater is implemented by entities that advance once per tick.
type Updater interface {
	// Update advances the entity by one tick. Returns true once the entity
	// has passed its despawn bound and should be removed.
	Update(ctx UpdateContext) (remove bool)
}

// Sweep updates every item of a population in place and drops the ones that
// report removal. The backing array is reused.
func Sweep[T any, PT interface {
	*T
	Updater
}](items []T, ctx UpdateContext) []T {
	kept := items[:0]
	for i := range items {
		if !PT(&items[i]).Update(ctx) {
			kept = append(kept, items[i])
		}
	}
	clear(items[len(kept):])
	return kept
}

// Remove drops every item for which drop returns true, keeping order.
// Returns the compacted slice and the number of items removed.
func Remove[T any](items []T, drop func(*T) bool) ([]T, int) {
	kept := items[:0]
	for i := range items {
		if !drop(&items[i]) {
			kept = append(kept, items[i])
		}
	}
	removed := len(items) - len(kept)
	clear(items[len(kept):])
	return kept, removed
}

// IDs hands out monotonically increasing identifiers for one population.
type IDs struct {
	next int
}

// Next returns a fresh id.
func (g *IDs) Next() int {
	id := g.next
	g.next++
	return id
}

// Peek returns the id the next call to Next will hand out.
func (g *IDs) Peek() int {
	return g.next
}
