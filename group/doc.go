// Package group models the nested test-group hierarchy of a documented test
// suite and recovers resource and action identity from its labels.
//
// A test mirrors its t.Run nesting with a chain of [Node] values:
//
//	widgets := group.New(nil, "Group Widget")
//	list := widgets.Child("GET /widgets")
//
// [MatchResource] and [MatchAction] recognise the two label conventions
// ("Group <Name>" and "<METHOD> <path>"), and [Find] walks from a node toward
// the root until one of them matches.
package group
