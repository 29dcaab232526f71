/*
Package perfmetrics publishes gcsfuse performance test results to Google Sheets and provides the
chunked read workload those tests run.

The perfmetrics command supports the following commands:

  - put, to replace the data rows of the worksheet for the current machine type with a TSV/CSV file
  - append, to add the rows of a TSV/CSV file below the existing rows of a worksheet
  - get, to download a worksheet range as a TSV file
  - read, to run the chunked read workload against a mounted bucket or a bucket URL
  - generate, to create the workload files
  - version
*/
package perfmetrics
