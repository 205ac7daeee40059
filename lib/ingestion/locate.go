package ingestion

import "os"

// locateInput checks that [path] is an existing regular file before anything is read from it.
func locateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return raise(MissingInputFileError{Path: path})
	}

	return nil
}
