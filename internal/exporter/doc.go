// Package exporter writes the aggregate engagement views to files the
// reporting audience can take away: one CSV per view, or a single Excel
// workbook with one sheet per view plus the findings.
package exporter
