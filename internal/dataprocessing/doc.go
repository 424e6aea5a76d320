// Package dataprocessing reads raw sales observation files and turns them
// into the observation slices the cleaning pipeline consumes. It handles
// the complete ingestion lifecycle from file format detection to parsed,
// typed records.
//
// # Architecture
//
// The package is organized into two main components:
//
// 1. Parser: Reads CSV files with Date and Total Sales columns
// 2. XLSX loader: Reads the same contract from Excel workbooks
//
// # Usage
//
// Basic loading example:
//
//	observations, err := dataprocessing.Load("sales.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load dispatches on the file extension; LoadCSV and LoadXLSX can be
// called directly when the format is known.
//
// # Input Contract
//
// Both loaders accept a header row naming the Total Sales and Date
// columns, in either order and alongside extra columns. Dates parse from
// the reporting format (1/2/2006) or the ISO form the exporter writes
// (2006-01-02); totals accept thousands separators and surrounding
// whitespace. Rows that cannot be parsed fail the load with the row
// number in the error.
//
// # Error Handling
//
// All functions return detailed errors that include context about what
// failed:
//
//	- Open and format errors include the file path
//	- Row errors include the 1-based row number and offending value
//
// Duplicate dates are NOT detected here; the cleaning pipeline owns that
// check so the error carries cleaning semantics.
package dataprocessing
