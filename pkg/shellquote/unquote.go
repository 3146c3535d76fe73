package shellquote

import (
	"runtime"
	"strings"

	"github.com/gopherclass/go-shellquote"
	"github.com/pkg/errors"
)

var ErrEmptyCommand = errors.New("empty command")

func Split(input string) (words []string, err error) {
	// Escape backslashes on Windows
	// Without it shellquote.Split will split command without backslashes
	// C:\acserver\acServer.exe -> ["C:acserveracServer.exe"]
	if runtime.GOOS == "windows" {
		input = strings.ReplaceAll(input, "\\", "\\\\")
	}

	return shellquote.Split(input)
}

// SplitCommand splits a configured command line into the executable and
// its arguments.
func SplitCommand(input string) (string, []string, error) {
	words, err := Split(input)
	if err != nil {
		return "", nil, errors.WithMessagef(err, "invalid command %q", input)
	}
	if len(words) == 0 {
		return "", nil, ErrEmptyCommand
	}

	return words[0], words[1:], nil
}

func Join(words ...string) string {
	return shellquote.Join(words...)
}
