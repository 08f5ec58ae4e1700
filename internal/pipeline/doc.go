// Package pipeline provides a framework for executing scan stages in
// sequence.
//
// A font scan runs through multiple stages over a shared report:
// probing the corpus for available fonts, deriving the fingerprint, and
// computing the uniqueness score. Each stage is implemented as a Step
// that receives the accumulated report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of stages without modifying core logic
// 2. It provides consistent error handling and logging across stages
// 3. It supports cancellation via context for long-running scans
package pipeline
