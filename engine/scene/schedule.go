package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-topdown/engine/input"
)

var (
	// ErrOrderingCycle is returned when a system's Before/After constraints would create a cycle in its stage.
	ErrOrderingCycle = errors.New("system ordering cycle")
	// ErrDuplicateSystem is returned when a system set name is registered twice in one scene.
	ErrDuplicateSystem = errors.New("duplicate system set")
)

// Stage is a coarse phase of Scene.Update. Stages run in declaration order; systems inside a stage run in
// the order their constraints resolve to.
type Stage int

const (
	StagePreUpdate Stage = iota
	StageUpdate
	StagePostUpdate
	StageLast

	stageCount
)

func (s Stage) String() string {
	switch s {
	case StagePreUpdate:
		return "PreUpdate"
	case StageUpdate:
		return "Update"
	case StagePostUpdate:
		return "PostUpdate"
	case StageLast:
		return "Last"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// SystemSet names a system so other systems can order themselves against it.
type SystemSet string

// Built-in sets registered by every Scene.
const (
	// SetTransformPropagate computes every object's world transform from its parent chain (StagePostUpdate).
	SetTransformPropagate SystemSet = "TransformPropagate"
	// SetCameraUpdate refreshes the scene camera's matrices from its controller (StageLast).
	SetCameraUpdate SystemSet = "CameraUpdate"
)

// Frame is what a system sees for one Scene.Update call.
type Frame struct {
	Scene     Scene
	DeltaTime float32
	Input     input.Snapshot
}

// System updates a scene once per frame.
type System interface {
	Update(f Frame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(f Frame)

func (fn SystemFunc) Update(f Frame) {
	fn(f)
}

// SystemOption constrains where a system runs relative to other sets in the same stage.
// Constraints naming sets that are not registered in the stage are ignored until those sets appear.
type SystemOption func(e *systemEntry)

// Before orders the system ahead of the given set.
//
// Parameters:
//   - set: the set that must run later
//
// Returns:
//   - SystemOption: the constraint
func Before(set SystemSet) SystemOption {
	return func(e *systemEntry) {
		e.before = append(e.before, set)
	}
}

// After orders the system behind the given set.
//
// Parameters:
//   - set: the set that must run earlier
//
// Returns:
//   - SystemOption: the constraint
func After(set SystemSet) SystemOption {
	return func(e *systemEntry) {
		e.after = append(e.after, set)
	}
}

type systemEntry struct {
	set    SystemSet
	system System
	before []SystemSet
	after  []SystemSet
	seq    int
}

// schedule holds the registered systems per stage and their resolved run order.
// It is not safe for concurrent use; the scene guards it.
type schedule struct {
	entries [stageCount][]*systemEntry
	ordered [stageCount][]*systemEntry
	nextSeq int
}

// add registers a system and re-resolves its stage, rolling back if the constraints cannot be satisfied.
func (sc *schedule) add(stage Stage, set SystemSet, sys System, options ...SystemOption) error {
	if stage < 0 || stage >= stageCount {
		return fmt.Errorf("add system %q: unknown stage %v", set, stage)
	}
	if sys == nil {
		return fmt.Errorf("add system %q: nil system", set)
	}
	if sc.has(set) {
		return fmt.Errorf("add system %q: %w", set, ErrDuplicateSystem)
	}

	e := &systemEntry{set: set, system: sys, seq: sc.nextSeq}
	for _, option := range options {
		option(e)
	}

	candidate := append(slices.Clone(sc.entries[stage]), e)
	order, err := resolve(candidate)
	if err != nil {
		return fmt.Errorf("add system %q to %v: %w", set, stage, err)
	}
	sc.nextSeq++
	sc.entries[stage] = candidate
	sc.ordered[stage] = order
	return nil
}

// remove unregisters a set; it reports whether the set existed.
func (sc *schedule) remove(set SystemSet) bool {
	for stage := range stageCount {
		idx := slices.IndexFunc(sc.entries[stage], func(e *systemEntry) bool { return e.set == set })
		if idx < 0 {
			continue
		}
		sc.entries[stage] = slices.Delete(sc.entries[stage], idx, idx+1)
		// dropping a node cannot introduce a cycle
		sc.ordered[stage], _ = resolve(sc.entries[stage])
		return true
	}
	return false
}

func (sc *schedule) has(set SystemSet) bool {
	for stage := range stageCount {
		for _, e := range sc.entries[stage] {
			if e.set == set {
				return true
			}
		}
	}
	return false
}

// order returns the resolved systems of a stage as set names, for inspection.
func (sc *schedule) order(stage Stage) []SystemSet {
	if stage < 0 || stage >= stageCount {
		return nil
	}
	out := make([]SystemSet, 0, len(sc.ordered[stage]))
	for _, e := range sc.ordered[stage] {
		out = append(out, e.set)
	}
	return out
}

// snapshot copies the resolved order of every stage so Update can run without holding the scene lock.
func (sc *schedule) snapshot() [stageCount][]*systemEntry {
	var out [stageCount][]*systemEntry
	for stage := range stageCount {
		out[stage] = slices.Clone(sc.ordered[stage])
	}
	return out
}

// resolve topologically sorts entries by their constraints (Kahn's algorithm).
// Among systems that are ready at the same time the earliest registered runs first.
func resolve(entries []*systemEntry) ([]*systemEntry, error) {
	index := make(map[SystemSet]int, len(entries))
	for i, e := range entries {
		index[e.set] = i
	}

	edges := make([][]int, len(entries))
	inDegree := make([]int, len(entries))
	link := func(from, to int) {
		edges[from] = append(edges[from], to)
		inDegree[to]++
	}
	for i, e := range entries {
		for _, b := range e.before {
			if j, ok := index[b]; ok {
				link(i, j)
			}
		}
		for _, a := range e.after {
			if j, ok := index[a]; ok {
				link(j, i)
			}
		}
	}

	ready := make([]int, 0, len(entries))
	for i := range entries {
		if inDegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	out := make([]*systemEntry, 0, len(entries))
	for len(ready) > 0 {
		next := slices.MinFunc(ready, func(a, b int) int { return entries[a].seq - entries[b].seq })
		ready = slices.DeleteFunc(ready, func(i int) bool { return i == next })
		out = append(out, entries[next])
		for _, to := range edges[next] {
			inDegree[to]--
			if inDegree[to] == 0 {
				ready = append(ready, to)
			}
		}
	}

	if len(out) != len(entries) {
		var stuck []SystemSet
		for i, e := range entries {
			if inDegree[i] > 0 {
				stuck = append(stuck, e.set)
			}
		}
		return nil, fmt.Errorf("%w between %v", ErrOrderingCycle, stuck)
	}
	return out, nil
}
