package service

import (
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"

	"github.com/allisson/taskman/internal/auth/domain"
	apperrors "github.com/allisson/taskman/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// LoadSigningSecret resolves the token signing secret from configuration.
//
// When kmsKeyURI is empty the secret value is used as-is. Otherwise the value
// is treated as base64 ciphertext and decrypted through the KMS keeper
// identified by the URI (gcpkms://, awskms://, azurekeyvault://,
// hashivault://, base64key://), so the plain signing key never has to live in
// the environment.
func LoadSigningSecret(ctx context.Context, secretValue, kmsKeyURI string) ([]byte, error) {
	if secretValue == "" {
		return nil, domain.ErrMissingSigningSecret
	}

	if kmsKeyURI == "" {
		return []byte(secretValue), nil
	}

	keeper, err := secrets.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open KMS keeper")
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := base64.StdEncoding.DecodeString(secretValue)
	if err != nil {
		return nil, apperrors.Wrap(err, "signing secret must be base64 ciphertext when KMS is configured")
	}

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt signing secret")
	}

	return plaintext, nil
}
