package cryptox

import (
	"fmt"
	"os"

	"github.com/monacovault/vaultctl/internal/common"
)

const (
	deviceSecretSize = 32
	deviceSaltSize   = 16
)

// LoadOrCreateDeviceSecret reads the per-install device secret file, or
// creates it with 0600 permissions on first run. The file holds 32 bytes of
// secret followed by a 16-byte Argon2 salt; both are returned separately.
//
// The secret binds the sealed session token to this installation so a
// copied database file alone is not enough to recover the token.
func LoadOrCreateDeviceSecret(path string) (secret, salt []byte, err error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) != deviceSecretSize+deviceSaltSize {
			return nil, nil, fmt.Errorf("device secret file %s is corrupt", path)
		}
		return data[:deviceSecretSize], data[deviceSecretSize:], nil
	}
	if !os.IsNotExist(err) {
		return nil, nil, err
	}

	secret = common.GenerateRandByteArray(deviceSecretSize)
	salt = common.GenerateRandByteArray(deviceSaltSize)

	if err := os.WriteFile(path, append(append([]byte{}, secret...), salt...), 0o600); err != nil {
		return nil, nil, err
	}
	return secret, salt, nil
}
