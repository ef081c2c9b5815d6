// Package calculator derives read-only figures from stored contributions.
package calculator
