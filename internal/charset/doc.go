// Package charset reinterprets a document's text under a different byte
// encoding.
//
// A document declares the encoding its bytes were read with. When that
// declaration was wrong the text on screen is mojibake; Redecode recovers
// the original bytes by encoding the text back under the declared encoding
// and decodes them again under the right one, either named by the caller or
// guessed by a Detector. The result can be folded to ASCII look-alikes.
//
// Encodings are identified by canonical names (see Lookup) backed by
// golang.org/x/text encodings.
package charset
