// Package dataset loads tabular data files into string-celled frames and
// splits them into train, validation and test partitions.
//
// CSV files are read with a header row; xlsx workbooks are read with
// excelize from the first (or a named) worksheet. Cells equal to one of
// MissingMarkers are treated as missing. Column kinds are inferred lazily:
// a column is numeric when every observed cell parses as a float.
package dataset
