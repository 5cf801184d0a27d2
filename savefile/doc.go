// Package savefile parses the Paradox script format used by Victoria 2
// save files.
//
// The format is hierarchical plain text: key=value pairs, brace-delimited
// blocks nested arbitrarily deep, # comments, and no schema. Whether a
// block holds key/value pairs or an ordered list of bare values is not
// marked structurally; the parser infers it from whether the first element
// is followed by '='. Duplicate keys are common and merge into Sequences in
// encounter order.
//
//	date="1836.1.1"
//	worldmarket={
//	    price_pool={ iron=35.000 coal=2.300 }
//	}
//	ENG={
//	    treasury=50000.00
//	    state={ provinces={ 300 301 302 } }
//	}
//
// Malformed input never fails a parse: truncated strings, missing braces
// and stray tokens end the affected block early and everything parsed up to
// that point is returned.
//
// Save files reach hundreds of megabytes, so besides the full-document
// Parse the package offers anchored extraction: ExtractSection parses one
// named top-level value and Records iterates repeated blocks matched by a
// line-start key shape, both slicing byte ranges via brace-depth counting
// and parsing only those ranges. Both are guaranteed to produce the same
// trees a full parse would for the same range.
package savefile
