// Package videos implements the video ranking pipeline: text normalization,
// transcript acquisition, comment signals, candidate search and the
// composite-score ranking engine.
package videos
