package util

import (
	"os"

	"github.com/pkg/errors"
)

func WriteFile(content string, file string) error {
	return errors.Wrapf(os.WriteFile(file, []byte(content), 0644), "could not write %s", file)
}
