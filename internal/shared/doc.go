// Package shared holds code used by several packages that belongs to no
// single layer.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- BufferedSlogHandler and NewTestLogger for asserting on log output
//	- Workbook fixtures built with excelize (NewWorkbookBytes,
//	  WriteWorkbookFile, ReadWorkbookRows)
//
// Only test helpers and domain-neutral code belong here.
package shared
