// Package scrolltween is a progress-driven keyframe engine for scroll-linked
// animation.
//
// Callers describe how properties (frames, opacity, colors) should change as a
// continuous progress value moves, usually the horizontal offset of a paging
// scroll view. The [Controller] evaluates every described track whenever
// progress changes and hands the interpolated value to a bound action.
//
// # Describing tracks
//
// A track is a chain of keyframes started with [TweenFrom] and sealed with
// [TrackBuilder.WithAction]:
//
//	ctrl := scrolltween.NewController()
//	err := scrolltween.TweenFrom(ctrl, scrolltween.Scalar(0), 0).
//		To(1, 100).
//		ThenHoldUntil(200).
//		ThenTo(0, 300).
//		WithAction(scrolltween.ApplyAlpha(view))
//
// Positions must strictly increase along the chain. A violation is reported by
// WithAction as an [*OrderingError] and the track is dropped.
//
// Evaluation clamps: before the first keyframe a track yields its first value,
// past the last keyframe it yields its last value.
//
// # Boundaries
//
// [Controller.ObserveForwardBoundary] registers a callback that fires once when
// progress crosses a threshold moving forward. It re-arms when progress crosses
// back, or after [Controller.ResetProgress]:
//
//	ctrl.ObserveForwardBoundary(end, func() {
//		scroll.SetOffset(scrolltween.Vec2{})
//		ctrl.ResetProgress()
//	})
//
// # Driving progress
//
// Any [ScrollSource] can feed a controller via [Drive]. [ScrollView] is a
// toolkit-free paging scroll model; the stage subpackage renders a [View] tree
// with Ebitengine and turns pointer input into scroll offsets.
//
// Everything is single-threaded: updates, evaluation and callbacks run
// synchronously on the caller's goroutine.
package scrolltween
