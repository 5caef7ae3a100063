// Package tabular reads and writes the tab-delimited text files exchanged by
// the segmenter, the periodogram stage and the merge step.
package tabular
