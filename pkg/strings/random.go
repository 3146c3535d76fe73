package strings

import (
	"github.com/pkg/errors"
	"github.com/sethvargo/go-password/password"
)

// GeneratePassword returns a password of letters and digits only, so it
// can be stored in an INI value and typed into the game client.
func GeneratePassword(length int) (string, error) {
	generator, err := password.NewGenerator(&password.GeneratorInput{
		Symbols: "",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to create password generator")
	}

	digits := length / 4 //nolint:mnd

	pass, err := generator.Generate(length, digits, 0, false, true)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate password")
	}

	return pass, nil
}
