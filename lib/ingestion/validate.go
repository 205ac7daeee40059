package ingestion

import "github.com/artie-labs/credit-approval/lib/table"

func validateRequiredColumns(tbl *table.Table, required []string, dataset string) error {
	if missing := tbl.MissingColumns(required); len(missing) > 0 {
		return raise(SchemaValidationError{Dataset: dataset, Missing: missing})
	}

	return nil
}
