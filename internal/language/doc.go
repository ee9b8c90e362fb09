// Package language normalizes the language codes found on audio and subtitle
// streams.
//
// Inputs may be ISO 639-1 or ISO 639-2 (terminology or bibliographic) codes,
// English language names, or BCP 47 tags such as "en-US". Parsing and display
// names come from golang.org/x/text; Match is what subtitle ranking uses to
// decide whether two streams carry the same language.
package language
