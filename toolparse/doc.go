// Package toolparse recovers tool invocations from model output that is
// not reliably structured.
//
// Local models are erratic about tool calling: the same model may return
// native structured calls on one turn, narrate a call as a JSON blob in
// prose on the next, and print read_file({"path": "x"}) pseudo-code on a
// third. The Matcher mines all of those shapes out of free text, Extract
// reconciles the mined calls with any native ones the provider returned,
// Dedup suppresses immediate repeats of recently executed calls, and
// HasProgressMarkers judges from recent tool results whether a run that
// stopped calling tools actually got anywhere.
//
// Native calls always win: when a response carries structured records,
// Extract passes them through verbatim and never second-guesses them by
// scanning the text.
package toolparse
