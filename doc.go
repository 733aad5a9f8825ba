// Package graphplan implements a classical GraphPlan-style automated
// planner: given an initial world state, a goal state, and a set of
// parameterized actions, it produces a totally-ordered sequence of
// actions whose execution transforms the initial state into one that
// entails the goal, or reports that no such sequence exists.
//
// The two algorithmic subsystems — planning-graph construction with
// mutex propagation, and backward goal regression over that graph — live
// in internal/graphbuilder and internal/graphsolver, driven by
// internal/planner. This package is a thin public facade over them.
package graphplan
