// Package detect implements intro boundary detection for episodic video.
//
// Independent evidence extractors (audio silence, black frames and scene
// structure, subtitle timing and text) each propose at most one candidate
// intro end with a confidence score. The fusion engine combines the
// candidates into a single result and always produces a usable answer, even
// when every extractor abstains.
package detect
