package account

import (
	"fmt"
	"os"
)

const (
	SecretEnvVar = "TODOAPI_TOKEN_SECRET"
)

// SecretFromEnv reads the token signing secret from the given
// environment variable and blanks the variable afterwards, so the
// secret does not leak into child processes.
func SecretFromEnv(varname string, getfn func(string) string, setfn func(string, string) error) ([]byte, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	setfn(varname, "")
	if len(val) == 0 {
		return nil, fmt.Errorf("account: environment variable %v does not contain a signing secret", varname)
	}
	return []byte(val), nil
}
