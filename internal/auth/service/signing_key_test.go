package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	"github.com/allisson/taskman/internal/auth/domain"
)

const testKeeperURI = "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

func TestLoadSigningSecret_Plain(t *testing.T) {
	secret, err := LoadSigningSecret(context.Background(), "plain-secret", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("plain-secret"), secret)
}

func TestLoadSigningSecret_Missing(t *testing.T) {
	secret, err := LoadSigningSecret(context.Background(), "", "")
	assert.Nil(t, secret)
	assert.ErrorIs(t, err, domain.ErrMissingSigningSecret)
}

func TestLoadSigningSecret_KMS(t *testing.T) {
	ctx := context.Background()

	// Encrypt a signing key with the local keeper to simulate a KMS-managed secret
	keeper, err := secrets.OpenKeeper(ctx, testKeeperURI)
	require.NoError(t, err)
	defer func() { _ = keeper.Close() }()

	ciphertext, err := keeper.Encrypt(ctx, []byte("kms-managed-signing-key"))
	require.NoError(t, err)

	encoded := base64.StdEncoding.EncodeToString(ciphertext)

	secret, err := LoadSigningSecret(ctx, encoded, testKeeperURI)
	require.NoError(t, err)
	assert.Equal(t, []byte("kms-managed-signing-key"), secret)
}

func TestLoadSigningSecret_KMSBadCiphertext(t *testing.T) {
	ctx := context.Background()

	_, err := LoadSigningSecret(ctx, "not-base64!!!", testKeeperURI)
	assert.Error(t, err)
}

func TestLoadSigningSecret_BadKeeperURI(t *testing.T) {
	_, err := LoadSigningSecret(context.Background(), "Zm9v", "unknown://nope")
	assert.Error(t, err)
}
