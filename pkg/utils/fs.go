package utils

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/otiai10/copy"
	"github.com/pkg/errors"
)

func IsFileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func IsRegularFile(path string) bool {
	fi, err := os.Stat(path)

	return err == nil && fi.Mode().IsRegular()
}

func IsDirExists(path string) bool {
	fi, err := os.Stat(path)

	return err == nil && fi.IsDir()
}

// Backup copies path next to itself with a timestamp suffix and returns the
// copy's path. A missing path is not backed up and yields an empty string.
func Backup(path string, now time.Time) (string, error) {
	_, err := os.Stat(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.WithMessage(err, "failed to stat file")
	}

	dst := fmt.Sprintf("%s.%s.bak", path, now.Format("20060102150405"))

	err = copy.Copy(path, dst, copy.Options{
		PreserveTimes: true,
	})
	if err != nil {
		return "", errors.WithMessagef(err, "failed to copy %s to %s", path, dst)
	}

	log.Printf("Backup of %s saved to %s\n", path, dst)

	return dst, nil
}
