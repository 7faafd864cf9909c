// Package report renders offline artefacts of a platoon run: a PNG plot of
// the reference path and vehicle trails (gonum/plot) and an HTML speed chart
// (go-echarts).
package report
