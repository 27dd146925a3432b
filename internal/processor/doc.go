// Package processor contains the top-level logic of mdtranslate. It reads
// the input, builds the translator from the configuration, translates the
// document fragment by fragment and writes the result. Batch runs repeat
// this for every listed file with one shared translator.
package processor
