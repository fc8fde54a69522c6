// Package verify checks detached OpenPGP signatures over downloaded archives.
package verify

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/sirupsen/logrus"
)

// Verifier checks signatures against a fixed keyring
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier loads a public keyring, armored or binary
func NewVerifier(keyringPath string) (*Verifier, error) {
	if keyringPath == "" {
		return nil, fmt.Errorf("keyring path is empty")
	}

	keyFile, err := os.Open(keyringPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	defer keyFile.Close()

	// Try to parse as armored key first
	entityList, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		// Try as binary key
		if _, err := keyFile.Seek(0, 0); err != nil {
			return nil, err
		}
		entityList, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return &Verifier{keyring: entityList}, nil
}

// VerifyFile checks signaturePath as a detached signature over archivePath
// and returns the identity of the signing key
func (v *Verifier) VerifyFile(archivePath, signaturePath string) (string, error) {
	sig, err := os.ReadFile(signaturePath)
	if err != nil {
		return "", fmt.Errorf("failed to read signature: %w", err)
	}

	archive, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	var signer *openpgp.Entity
	if bytes.HasPrefix(bytes.TrimSpace(sig), []byte("-----BEGIN")) {
		signer, err = openpgp.CheckArmoredDetachedSignature(v.keyring, archive, bytes.NewReader(sig), nil)
	} else {
		signer, err = openpgp.CheckDetachedSignature(v.keyring, archive, bytes.NewReader(sig), nil)
	}
	if err != nil {
		return "", fmt.Errorf("signature verification failed: %w", err)
	}

	identity := signer.PrimaryKey.KeyIdString()
	for name := range signer.Identities {
		identity = name
		break
	}

	logrus.Infof("Good signature from %s", identity)
	return identity, nil
}
